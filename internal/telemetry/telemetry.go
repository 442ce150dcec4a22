// Package telemetry gathers point-in-time host measurements for the
// dashboard: CPU, memory and disk usage, the process table, uptime and
// the tail of the system log. Nothing is cached between calls.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hostdash/internal/models"
	"hostdash/internal/redaction"
)

// ErrTelemetryUnavailable wraps every failure to query the host.
var ErrTelemetryUnavailable = errors.New("telemetry unavailable")

const (
	DefaultCPUInterval = time.Second
	DefaultDiskPath    = "/"
	DefaultLogLimit    = 50
)

// DefaultLogPaths are tried in order; the first that exists is tailed.
var DefaultLogPaths = []string{"/var/log/syslog", "/var/log/messages"}

type Config struct {
	CPUInterval time.Duration
	DiskPath    string
	LogPaths    []string
	// Redactor is applied to real log lines. May be nil.
	Redactor *redaction.Redactor
}

type Aggregator struct {
	host Host
	cfg  Config
	now  func() time.Time
}

func New(h Host, cfg Config) *Aggregator {
	if cfg.CPUInterval <= 0 {
		cfg.CPUInterval = DefaultCPUInterval
	}
	if cfg.DiskPath == "" {
		cfg.DiskPath = DefaultDiskPath
	}
	if cfg.LogPaths == nil {
		cfg.LogPaths = DefaultLogPaths
	}
	return &Aggregator{host: h, cfg: cfg, now: time.Now}
}

func unavailable(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrTelemetryUnavailable, what, err)
}

// CPUMemoryDisk blocks for the CPU sampling window.
func (a *Aggregator) CPUMemoryDisk(ctx context.Context) (models.SystemStats, error) {
	var stats models.SystemStats
	var err error

	if stats.CPUPercent, err = a.host.CPUPercent(ctx, a.cfg.CPUInterval); err != nil {
		return models.SystemStats{}, unavailable("cpu", err)
	}
	if stats.MemoryPercent, err = a.host.MemoryPercent(ctx); err != nil {
		return models.SystemStats{}, unavailable("memory", err)
	}
	if stats.DiskUsage, err = a.host.DiskUsage(ctx, a.cfg.DiskPath); err != nil {
		return models.SystemStats{}, unavailable("disk "+a.cfg.DiskPath, err)
	}
	return stats, nil
}

// Processes lists every process the host reports. Processes whose
// attributes cannot be read are left out rather than failing the call.
func (a *Aggregator) Processes(ctx context.Context) ([]models.Process, error) {
	procs, err := a.host.Processes(ctx)
	if err != nil {
		return nil, unavailable("process list", err)
	}

	out := make([]models.Process, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name(ctx)
		if err != nil {
			continue
		}
		cpuPercent, err := p.CPUPercent(ctx)
		if err != nil {
			continue
		}
		rss, err := p.RSS(ctx)
		if err != nil {
			continue
		}
		out = append(out, models.Process{
			PID:        p.PID(),
			Name:       name,
			CPUPercent: cpuPercent,
			MemoryMB:   rss / (1024 * 1024),
		})
	}
	return out, nil
}

func (a *Aggregator) Uptime(ctx context.Context) (string, error) {
	boot, err := a.host.BootTime(ctx)
	if err != nil {
		return "", unavailable("boot time", err)
	}
	return FormatUptime(a.now().Sub(boot)), nil
}

// FormatUptime renders d as HH:MM:SS. Hours are not wrapped at 24 and grow
// past two digits when needed; negative durations render as 00:00:00.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
