package servers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/reusee/armplan/exports"
	"github.com/reusee/armplan/logs"
	"github.com/reusee/armplan/motions"
	"github.com/reusee/armplan/plans"
	"github.com/reusee/armplan/poses"
	"github.com/reusee/armplan/syncs"
)

const maxBodyBytes = 1 << 20

type Handler http.Handler

type planRequest struct {
	Prompt string `json:"prompt"`
}

type poseRequest struct {
	JointAngles map[string]float64 `json:"jointAngles"`
	Size        int                `json:"size"`
	Format      string             `json:"format"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{
		Error: msg,
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func (Module) Handler(
	generate plans.GenerateResult,
	arm poses.Arm,
	maxConcurrent MaxConcurrentGenerations,
	logger logs.Logger,
) Handler {
	sem := syncs.NewSemaphore(int(maxConcurrent))
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintln(w, "ok")
	})

	mux.HandleFunc("POST /api/plans", func(w http.ResponseWriter, r *http.Request) {
		var req planRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := sem.Acquire(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "Server is busy.")
			return
		}
		defer sem.Release()
		result := generate(r.Context(), req.Prompt)
		if result.Error != nil {
			logger.InfoContext(r.Context(), "plan request failed", "error", *result.Error)
		}
		writeJSON(w, http.StatusOK, result)
	})

	mux.HandleFunc("POST /api/exports", func(w http.ResponseWriter, r *http.Request) {
		format, err := exports.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		var plan motions.Plan
		if !decodeBody(w, r, &plan) {
			return
		}
		if err := plan.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		buf := new(bytes.Buffer)
		if err := exports.Export(buf, plan, format); err != nil {
			if errors.Is(err, exports.ErrNoPlan) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			logger.ErrorContext(r.Context(), "export plan", "err", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, format.FileName()))
		w.Write(buf.Bytes())
	})

	mux.HandleFunc("POST /api/poses", func(w http.ResponseWriter, r *http.Request) {
		var req poseRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Size > poses.MaxCanvasSize {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("size exceeds %d", poses.MaxCanvasSize))
			return
		}
		poseArm := arm.WithSize(req.Size)
		pose := poses.Project(req.JointAngles, poseArm)
		switch req.Format {
		case "", "svg":
			w.Header().Set("Content-Type", "image/svg+xml")
			poses.RenderSVG(w, pose, poseArm)
		case "png":
			buf := new(bytes.Buffer)
			if err := poses.RenderPNG(buf, pose, poseArm); err != nil {
				logger.ErrorContext(r.Context(), "render png", "err", err)
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			w.Header().Set("Content-Type", "image/png")
			w.Write(buf.Bytes())
		default:
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported image format: %s", req.Format))
		}
	})

	return mux
}
