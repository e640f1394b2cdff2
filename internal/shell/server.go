package shell

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/chriscow/voicebot-go/pkg/voice"
)

// ControllerFactory builds a fresh controller for each connection, giving
// every browser session its own conversation state.
type ControllerFactory func() (*voice.Controller, error)

// Server serves the WebSocket endpoint the browser UI connects to.
type Server struct {
	addr          string
	logger        *slog.Logger
	newController ControllerFactory
	upgrader      websocket.Upgrader
}

// NewServer creates a shell server listening on addr.
func NewServer(addr string, factory ControllerFactory, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		addr:          addr,
		logger:        logger,
		newController: factory,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1 << 16,
			WriteBufferSize: 1 << 16,
			// The demo UI is served from anywhere; tighten for deployment.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)

	server := &http.Server{Addr: s.addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("shell listening", slog.String("addr", s.addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("shell server failed: %w", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	controller, err := s.newController()
	if err != nil {
		s.logger.Error("failed to create controller", slog.String("error", err.Error()))
		conn.WriteJSON(errorCommand(err))
		return
	}

	session := NewSession(controller, s.logger)
	s.logger.Info("session started", slog.String("remote", r.RemoteAddr))

	for {
		var signal Signal
		if err := conn.ReadJSON(&signal); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("session read failed", slog.String("error", err.Error()))
			}
			s.logger.Info("session ended", slog.String("remote", r.RemoteAddr))
			return
		}

		for _, cmd := range session.Handle(r.Context(), &signal) {
			if err := conn.WriteJSON(cmd); err != nil {
				s.logger.Warn("session write failed", slog.String("error", err.Error()))
				return
			}
		}
	}
}
