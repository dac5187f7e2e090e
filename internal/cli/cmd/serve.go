package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/matjam/setroot/internal/changer"
	"github.com/matjam/setroot/internal/cli/cmd/utils"
	"github.com/matjam/setroot/internal/ipc"
	"github.com/matjam/setroot/internal/wallpaper"
	"github.com/sevlyar/go-daemon"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the wallpaper daemon",
		Long: `Runs a daemon that cycles through the images in the wallpapers directory,
fading each one in over the last. It is controlled with the status, stop,
next, load, set, color and copy-root commands.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if background, _ := cmd.Flags().GetBool("background"); background {
				child, err := daemonize()
				if err != nil {
					return err
				}
				if child != nil {
					log.Infof("setroot daemon started in PID: %d", child.Pid)
					return nil
				}
			}
			return StartManager()
		},
	}
	cmd.Flags().BoolP("background", "b", false, "Run as a daemon")
	return cmd
}

// daemonize re-executes setroot detached from the terminal. It returns the
// child process in the parent and nil in the child.
func daemonize() (*os.Process, error) {
	ctx := &daemon.Context{
		PidFileName: filepath.Join(filepath.Dir(ipc.SocketPath()), "setroot.pid"),
		PidFilePerm: 0644,
		WorkDir:     "/",
		Umask:       027,
		Args:        os.Args,
		Env:         append(os.Environ(), "BACKGROUND_PROCESS=1"),
	}

	child, err := ctx.Reborn()
	if err != nil {
		return nil, fmt.Errorf("failed to start daemon: %w", err)
	}
	if child == nil {
		cobra.OnFinalize(func() {
			_ = ctx.Release()
		})
	}
	return child, nil
}

func StartManager() error {
	log.Infof("StartManager() started in PID: %d", os.Getpid())

	if os.Getenv("BACKGROUND_PROCESS") == "1" {
		if err := setupRotatingLogger(); err != nil {
			return err
		}
	}

	if _, err := ipc.SendStatus(); err == nil {
		log.Infof("setroot is already running, exiting")
		return nil
	}

	opts, err := utils.SetterOptions()
	if err != nil {
		return err
	}

	log.Info("Searching for images ...")

	dir := utils.CanonicalPath(viper.GetString("wallpapers"))
	wallpapers, err := changer.Scan(dir)
	if err != nil {
		return fmt.Errorf("error reading wallpapers directory: %w", err)
	}
	if len(wallpapers) == 0 {
		log.Warnf("No wallpapers found in %s, waiting for a load command", dir)
	}

	log.Infof("Found %d wallpapers in %s", len(wallpapers), dir)
	log.Infof("Shuffle: %v", viper.GetBool("shuffle"))

	setter := wallpaper.NewX11Setter(viper.GetString("display"), opts)
	manager := ipc.NewManager(wallpapers, setter,
		time.Duration(viper.GetInt("delay"))*time.Second, viper.GetBool("shuffle"))

	server, err := ipc.NewServer(ipc.SocketPath(), manager)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", ipc.SocketPath(), err)
	}

	go func() {
		log.Infof("Starting socket server")
		if err := server.Serve(); err != nil {
			log.Errorf("Socket server error: %v", err)
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		if sig, ok := <-signals; ok {
			log.Infof("Received %v", sig)
			manager.Stop()
		}
	}()

	log.Infof("Running with %d wallpapers", len(manager.GetWallpapers()))
	manager.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Warnf("Socket server shutdown: %v", err)
	}

	log.Infof("setroot exited")
	return nil
}

func setupRotatingLogger() error {
	home := os.Getenv("HOME")
	logDir := filepath.Join(home, ".local", "share", "setroot")
	logPath := filepath.Join(logDir, "setroot.log")

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	writer, err := rotatelogs.New(
		logPath+".%Y%m%d%H%M",
		rotatelogs.WithLinkName(logPath),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationSize(10*1024*1024),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return fmt.Errorf("failed to configure log rotation: %w", err)
	}

	log.SetOutput(writer)
	if !viper.GetBool("debug") {
		log.SetLevel(log.InfoLevel)
	}
	return nil
}
