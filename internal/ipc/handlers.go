package ipc

import (
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/matjam/setroot"
	"github.com/spf13/viper"
)

func status(m ManagerInterface) StatusResponse {
	return StatusResponse{
		Status:           "ok",
		Message:          "setroot is running",
		Version:          strings.Trim(setroot.Version, "\n\r "),
		PID:              os.Getpid(),
		Socket:           SocketPath(),
		Config:           viper.ConfigFileUsed(),
		CurrentWallpaper: m.CurrentWallpaper(),
		Background:       formatPixmap(m.Background()),
		Wallpapers:       m.Wallpapers(),
	}
}

// GET /status
func statusHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, status(m), "  ")
	}
}

// POST /stop
func stopHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		m.EnqueueCommand(Command{Type: CommandStop})
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}

// POST /next
func nextHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		m.EnqueueCommand(Command{Type: CommandNext})
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}

// POST /load
func loadHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		var wallpapers []string
		if err := c.Bind(&wallpapers); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid JSON array of wallpapers"})
		}
		if len(wallpapers) == 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "no wallpapers given"})
		}

		m.EnqueueCommand(Command{
			Type: CommandLoad,
			Args: wallpapers,
		})

		return c.JSON(http.StatusOK, map[string]any{
			"status": "ok",
			"loaded": len(wallpapers),
		})
	}
}

// POST /command
func commandHandler(m ManagerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		var cmd Command
		if err := c.Bind(&cmd); err != nil {
			return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: "invalid command"})
		}

		switch cmd.Type {
		case CommandStatus:
			return c.JSON(http.StatusOK, Response{Status: "ok", Data: status(m)})
		case CommandStop, CommandNext, CommandCopyRoot:
		case CommandLoad:
			if len(cmd.Args) == 0 {
				return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: "no wallpapers given"})
			}
		case CommandSet, CommandColor:
			if len(cmd.Args) != 1 {
				return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: string(cmd.Type) + " takes exactly one argument"})
			}
		default:
			return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: "unknown command " + string(cmd.Type)})
		}

		m.EnqueueCommand(cmd)
		return c.JSON(http.StatusOK, Response{Status: "ok", Message: string(cmd.Type) + " queued"})
	}
}
