package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"hostdash/internal/models"
)

// Host is the set of raw host queries the aggregator shapes.
type Host interface {
	CPUPercent(ctx context.Context, interval time.Duration) (float64, error)
	MemoryPercent(ctx context.Context) (float64, error)
	DiskUsage(ctx context.Context, path string) (models.DiskUsage, error)
	BootTime(ctx context.Context) (time.Time, error)
	Processes(ctx context.Context) ([]Process, error)
}

// Process is one entry of a process listing. Attribute reads can fail if
// the process exits or is owned by another user.
type Process interface {
	PID() int32
	Name(ctx context.Context) (string, error)
	CPUPercent(ctx context.Context) (float64, error)
	RSS(ctx context.Context) (uint64, error)
}

// NewHost returns a Host backed by gopsutil.
func NewHost() Host {
	return gopsutilHost{}
}

type gopsutilHost struct{}

// CPUPercent takes its own sample over interval; nothing is shared
// between concurrent callers.
func (gopsutilHost) CPUPercent(ctx context.Context, interval time.Duration) (float64, error) {
	percents, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil {
		return 0, err
	}
	if len(percents) == 0 {
		return 0, errors.New("cpu sample returned no values")
	}
	return percents[0], nil
}

func (gopsutilHost) MemoryPercent(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return vm.UsedPercent, nil
}

func (gopsutilHost) DiskUsage(ctx context.Context, path string) (models.DiskUsage, error) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return models.DiskUsage{}, err
	}
	return models.DiskUsage{
		Total:   usage.Total,
		Used:    usage.Used,
		Free:    usage.Free,
		Percent: usage.UsedPercent,
	}, nil
}

func (gopsutilHost) BootTime(ctx context.Context) (time.Time, error) {
	secs, err := host.BootTimeWithContext(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(secs), 0), nil
}

func (gopsutilHost) Processes(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Process, 0, len(procs))
	for _, p := range procs {
		out = append(out, gopsutilProcess{p: p})
	}
	return out, nil
}

type gopsutilProcess struct {
	p *process.Process
}

func (gp gopsutilProcess) PID() int32 { return gp.p.Pid }

func (gp gopsutilProcess) Name(ctx context.Context) (string, error) {
	return gp.p.NameWithContext(ctx)
}

func (gp gopsutilProcess) CPUPercent(ctx context.Context) (float64, error) {
	return gp.p.CPUPercentWithContext(ctx)
}

func (gp gopsutilProcess) RSS(ctx context.Context) (uint64, error) {
	info, err := gp.p.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return info.RSS, nil
}
