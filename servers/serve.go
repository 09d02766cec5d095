package servers

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/reusee/armplan/logs"
)

// Serve runs the HTTP API until ctx is done.
type Serve func(ctx context.Context) error

func (Module) Serve(
	addr ListenAddr,
	handler Handler,
	logger logs.Logger,
) Serve {
	return func(ctx context.Context) error {
		ln, err := net.Listen("tcp", string(addr))
		if err != nil {
			return err
		}

		server := &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			BaseContext: func(net.Listener) context.Context {
				return ctx
			},
		}

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Warn("shutdown server", "err", err)
			}
		}()

		logger.InfoContext(ctx, "serving", "addr", ln.Addr().String())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
