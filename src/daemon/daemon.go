package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"promptloom/src/config"
	"promptloom/src/database"
)

// Run starts the daemon and blocks until it receives SIGINT or SIGTERM.
// SIGHUP reloads the question banks for sessions created afterwards.
func Run(settings *config.Settings, log *zap.Logger) error {
	pidPath := settings.Daemon.PIDFile
	if err := os.MkdirAll(filepath.Dir(pidPath), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := writePidFile(pidPath); err != nil {
		return err
	}
	defer os.Remove(pidPath)

	g, err := settings.LoadGraph()
	if err != nil {
		return fmt.Errorf("failed to load question banks: %w", err)
	}

	store, err := database.Open(settings.Store.Path, database.WithLogger(log))
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}

	server := NewServer(g, settings.Daemon.Socket, WithStore(store), WithLogger(log))
	if err := server.Start(); err != nil {
		store.Close()
		return fmt.Errorf("failed to start server: %w", err)
	}

	log.Info("daemon started",
		zap.Int("pid", os.Getpid()),
		zap.String("socket", settings.Daemon.Socket),
		zap.Int("nodes", g.Len()))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	for sig := range sigChan {
		if sig == syscall.SIGHUP {
			log.Info("received SIGHUP, reloading question banks")
			next, err := config.LoadSettings()
			if err != nil {
				log.Warn("failed to reload config", zap.Error(err))
				continue
			}
			g, err := next.LoadGraph()
			if err != nil {
				log.Warn("failed to reload question banks", zap.Error(err))
				continue
			}
			server.SetGraph(g)
			log.Info("question banks reloaded", zap.Int("nodes", g.Len()))
			continue
		}

		log.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := server.Stop(ctx)
		cancel()
		return err
	}
	return nil
}

// IsRunning checks the PID file for a live daemon process
func IsRunning(pidPath string) (bool, int) {
	data, err := os.ReadFile(pidPath)
	if err != nil {
		return false, 0
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return false, 0
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false, 0
	}

	if err := process.Signal(syscall.Signal(0)); err != nil {
		// stale PID file
		os.Remove(pidPath)
		return false, 0
	}
	return true, pid
}

// Stop sends SIGTERM to pid and kills it if it is still alive after the
// grace period
func Stop(pid int, pidPath string) error {
	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to send SIGTERM: %w", err)
	}

	time.Sleep(2 * time.Second)

	if err := process.Signal(syscall.Signal(0)); err == nil {
		if err := process.Kill(); err != nil {
			return fmt.Errorf("failed to kill process: %w", err)
		}
	}

	os.Remove(pidPath)
	return nil
}

func writePidFile(path string) error {
	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}
