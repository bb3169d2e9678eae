// Package health provides local resource health monitoring for the
// console: the endpoint store location and the scratch directory.
package health

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Status represents the current health status.
type Status string

const (
	// StatusHealthy indicates the service is functioning normally.
	StatusHealthy Status = "healthy"
	// StatusUnhealthy indicates the service is experiencing issues.
	StatusUnhealthy Status = "unhealthy"
	// StatusUnknown indicates the health status hasn't been determined yet.
	StatusUnknown Status = "unknown"
)

// Monitor tracks whether the console's local resources are usable: the
// directory holding the endpoint store must exist and the scratch
// directory must be writable.
type Monitor struct {
	mu                  sync.RWMutex
	storePath           string
	scratchDir          string
	status              Status
	lastCheck           time.Time
	lastError           error
	consecutiveFailures int
	logger              *slog.Logger
	checkInterval       time.Duration
	cancel              context.CancelFunc
}

// Info contains current health information.
type Info struct {
	Status              Status    `json:"status"`
	LastCheck           time.Time `json:"last_check"`
	LastError           string    `json:"last_error,omitempty"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
}

// NewMonitor creates a health monitor for the given store path and
// scratch directory.
func NewMonitor(storePath, scratchDir string, logger *slog.Logger) *Monitor {
	const defaultCheckInterval = 30 * time.Second
	return &Monitor{
		storePath:     storePath,
		scratchDir:    scratchDir,
		status:        StatusUnknown,
		logger:        logger,
		checkInterval: defaultCheckInterval,
	}
}

// Start begins health monitoring in the background.
func (h *Monitor) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	h.cancel = cancel

	h.check()
	go h.checkLoop(ctx)
}

// Stop stops the health monitoring.
func (h *Monitor) Stop() {
	if h.cancel != nil {
		h.cancel()
	}
}

// SetLogger sets the logger
func (h *Monitor) SetLogger(logger *slog.Logger) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.logger = logger
}

// GetHealthInfo returns current health information.
func (h *Monitor) GetHealthInfo() Info {
	h.mu.RLock()
	defer h.mu.RUnlock()

	errorMsg := ""
	if h.lastError != nil {
		errorMsg = h.lastError.Error()
	}
	return Info{
		Status:              h.status,
		LastCheck:           h.lastCheck,
		LastError:           errorMsg,
		ConsecutiveFailures: h.consecutiveFailures,
	}
}

// IsHealthy returns true if the local resources are currently usable.
func (h *Monitor) IsHealthy() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status == StatusHealthy
}

// checkLoop runs periodic health checks.
func (h *Monitor) checkLoop(ctx context.Context) {
	ticker := time.NewTicker(h.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.check()
		}
	}
}

// check verifies the store directory exists and the scratch directory is
// writable.
func (h *Monitor) check() {
	err := h.probe()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastCheck = time.Now()

	if err != nil {
		h.status = StatusUnhealthy
		h.lastError = err
		h.consecutiveFailures++
		h.logger.Debug("health check failed",
			slog.String("error", err.Error()),
			slog.Int("consecutive_failures", h.consecutiveFailures))
		return
	}

	wasUnhealthy := h.status == StatusUnhealthy
	h.status = StatusHealthy
	h.lastError = nil
	h.consecutiveFailures = 0
	if wasUnhealthy {
		h.logger.Info("health restored")
	}
}

func (h *Monitor) probe() error {
	storeDir := filepath.Dir(h.storePath)
	if _, err := os.Stat(storeDir); err != nil {
		return fmt.Errorf("store directory unavailable: %w", err)
	}

	probe, err := os.CreateTemp(h.scratchDir, "healthcheck-*")
	if err != nil {
		return fmt.Errorf("scratch directory not writable: %w", err)
	}
	probe.Close()           //nolint:errcheck
	os.Remove(probe.Name()) //nolint:errcheck
	return nil
}
