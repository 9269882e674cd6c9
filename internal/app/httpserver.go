package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type HTTPServer struct {
	srv  *http.Server
	addr string
	done chan struct{}
}

// StartHTTP слушает addr в отдельной горутине и останавливается при отмене ctx.
func StartHTTP(ctx context.Context, addr string, handler http.Handler, log *zap.Logger) (*HTTPServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	h := &HTTPServer{srv: srv, addr: ln.Addr().String(), done: make(chan struct{})}

	go func() {
		defer close(h.done)
		// закрываем аккуратно при Shutdown
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			log.Warn("http shutdown", zap.Error(err))
		}
	}()

	log.Info("http listening", zap.String("addr", h.addr))
	return h, nil
}

// Addr is the bound address, useful with ":0".
func (h *HTTPServer) Addr() string { return h.addr }

// Done закрывается, когда сервер полностью остановлен.
func (h *HTTPServer) Done() <-chan struct{} { return h.done }
