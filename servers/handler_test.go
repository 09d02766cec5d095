package servers

import (
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/reusee/armplan/configs"
	"github.com/reusee/armplan/generators"
	"github.com/reusee/armplan/modes"
	"github.com/reusee/armplan/plans"
	"github.com/reusee/dscope"
)

const (
	parserReply = `{"motionPrimitives": ["wave"]}`
	mapperReply = `{"motionPlan": [
	{"motionPrimitive": "wave", "jointAngles": {"joint1": [0, 0.5], "joint2": [0, 0.5]}}
]}`
)

func testScope(t *testing.T, defs ...any) dscope.Scope {
	return dscope.New(
		modes.ForTest(t),
		dscope.Provide(configs.NewLoader(nil, "")),
		new(Module),
	).Fork(
		append([]any{
			func() generators.GetDefaultGenerator {
				return func() (generators.Generator, error) {
					return generators.GeneratorFunc(func(_ context.Context, state generators.State) (generators.State, error) {
						prompt := string(state.Contents()[0].Parts[0].(generators.Text))
						if strings.Contains(prompt, "parse natural language motion prompts") {
							return generators.Reply(state, parserReply)
						}
						return generators.Reply(state, mapperReply)
					}), nil
				}
			},
		}, defs...)...,
	)
}

func do(t *testing.T, handler http.Handler, method string, target string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequestWithContext(t.Context(), method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	testScope(t).Call(func(
		handler Handler,
	) {
		w := do(t, handler, http.MethodGet, "/healthz", "")
		if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "ok" {
			t.Fatalf("got %d %s", w.Code, w.Body.String())
		}
	})
}

func TestPlans(t *testing.T) {
	testScope(t).Call(func(
		handler Handler,
	) {
		w := do(t, handler, http.MethodPost, "/api/plans", `{"prompt": "wave"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("got %d %s", w.Code, w.Body.String())
		}
		var result plans.Result
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatal(err)
		}
		if result.Error != nil {
			t.Fatal(*result.Error)
		}
		if len(result.Plan) != 1 || result.Plan[0].MotionPrimitive != "wave" || result.Plan[0].ID == "" {
			t.Fatalf("got %+v", result)
		}

		w = do(t, handler, http.MethodPost, "/api/plans", `{"prompt": "  "}`)
		if diff := cmp.Diff(`{"plan":null,"error":"Prompt cannot be empty."}`, strings.TrimSpace(w.Body.String())); diff != "" {
			t.Fatal(diff)
		}

		w = do(t, handler, http.MethodPost, "/api/plans", `not json`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("got %d", w.Code)
		}

		w = do(t, handler, http.MethodGet, "/api/plans", "")
		if w.Code != http.StatusMethodNotAllowed {
			t.Fatalf("got %d", w.Code)
		}
	})
}

func TestPlansBusy(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	testScope(t,
		func() MaxConcurrentGenerations {
			return 1
		},
		func() plans.GenerateResult {
			return func(ctx context.Context, prompt string) plans.Result {
				started <- struct{}{}
				<-release
				return plans.NewResult(nil, nil)
			}
		},
	).Call(func(
		handler Handler,
	) {
		done := make(chan struct{})
		go func() {
			defer close(done)
			do(t, handler, http.MethodPost, "/api/plans", `{"prompt": "wave"}`)
		}()
		<-started

		ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
		defer cancel()
		req := httptest.NewRequestWithContext(ctx, http.MethodPost, "/api/plans", strings.NewReader(`{"prompt": "wave"}`))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("got %d", w.Code)
		}

		close(release)
		<-done
	})
}

const planBody = `[{"id": "a", "motionPrimitive": "wave", "jointAngles": {"joint1": [0, 0.5], "joint2": [0, -0.5]}}]`

func TestExports(t *testing.T) {
	testScope(t).Call(func(
		handler Handler,
	) {
		w := do(t, handler, http.MethodPost, "/api/exports?format=yaml", planBody)
		if w.Code != http.StatusOK {
			t.Fatalf("got %d %s", w.Code, w.Body.String())
		}
		if got := w.Header().Get("Content-Type"); got != "application/x-yaml" {
			t.Fatalf("got %s", got)
		}
		if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="motion_plan.yaml"` {
			t.Fatalf("got %s", got)
		}
		if !strings.HasPrefix(w.Body.String(), "- motionPrimitive: wave") {
			t.Fatalf("got %s", w.Body.String())
		}

		w = do(t, handler, http.MethodPost, "/api/exports", planBody)
		if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="motion_plan.json"` {
			t.Fatalf("got %s", got)
		}

		w = do(t, handler, http.MethodPost, "/api/exports?format=json", `[]`)
		if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "No motion plan to export.") {
			t.Fatalf("got %d %s", w.Code, w.Body.String())
		}

		w = do(t, handler, http.MethodPost, "/api/exports?format=xml", planBody)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("got %d", w.Code)
		}

		w = do(t, handler, http.MethodPost, "/api/exports", `[{"id": "a", "motionPrimitive": "wave", "jointAngles": {"joint1": [0]}}]`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("got %d", w.Code)
		}
	})
}

func TestPoses(t *testing.T) {
	testScope(t).Call(func(
		handler Handler,
	) {
		w := do(t, handler, http.MethodPost, "/api/poses", `{"jointAngles": {"joint1": 0, "joint2": 0}}`)
		if w.Code != http.StatusOK {
			t.Fatalf("got %d %s", w.Code, w.Body.String())
		}
		if w.Header().Get("Content-Type") != "image/svg+xml" {
			t.Fatal()
		}
		if !strings.Contains(w.Body.String(), `viewBox="-75 -75 150 150"`) {
			t.Fatalf("got %s", w.Body.String())
		}

		w = do(t, handler, http.MethodPost, "/api/poses", `{"jointAngles": {"joint1": 0.5}, "size": 64, "format": "png"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("got %d %s", w.Code, w.Body.String())
		}
		img, err := png.Decode(w.Body)
		if err != nil {
			t.Fatal(err)
		}
		if img.Bounds().Dx() != 64 {
			t.Fatalf("got %v", img.Bounds())
		}

		w = do(t, handler, http.MethodPost, "/api/poses", `{"format": "gif"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("got %d", w.Code)
		}

		for _, body := range []string{
			`{"size": 33554432, "format": "png"}`,
			`{"size": 200000000}`,
		} {
			w = do(t, handler, http.MethodPost, "/api/poses", body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("%s: got %d", body, w.Code)
			}
		}

		w = do(t, handler, http.MethodPost, "/api/poses", `{"size": 2048}`)
		if w.Code != http.StatusOK {
			t.Fatalf("got %d %s", w.Code, w.Body.String())
		}
	})
}

func TestServe(t *testing.T) {
	testScope(t,
		func() ListenAddr {
			return "127.0.0.1:0"
		},
	).Call(func(
		serve Serve,
	) {
		ctx, cancel := context.WithCancel(t.Context())
		errCh := make(chan error, 1)
		go func() {
			errCh <- serve(ctx)
		}()
		time.Sleep(50 * time.Millisecond)
		cancel()
		if err := <-errCh; err != nil {
			t.Fatal(err)
		}
	})
}
