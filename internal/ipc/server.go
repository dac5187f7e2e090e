package ipc

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/matjam/setroot/internal/middleware"
)

// Server serves the daemon API on a unix socket.
type Server struct {
	echo *echo.Echo
	path string
}

// NewServer listens on the socket at path, replacing a stale socket file.
func NewServer(path string, manager ManagerInterface) (*Server, error) {
	if _, err := os.Stat(path); err == nil {
		_ = os.Remove(path)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Listener = listener

	e.Use(middleware.CharmLog())

	RegisterRoutes(e, manager)

	return &Server{echo: e, path: path}, nil
}

// Serve blocks until the server is shut down.
func (s *Server) Serve() error {
	log.Infof("Listening on %s", s.path)
	// echo.Shutdown only stops e.Server
	err := s.echo.StartServer(s.echo.Server)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server and removes the socket file.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.echo.Shutdown(ctx)
	_ = os.Remove(s.path)
	return err
}
