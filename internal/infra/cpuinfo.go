package infra

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/shirou/gopsutil/v3/cpu"
	"go.uber.org/zap"

	"github.com/eliteGoblin/govswitch/internal/domain"
)

// DefaultSysfsCPURoot is where the kernel exposes cpufreq attributes.
const DefaultSysfsCPURoot = "/sys/devices/system/cpu"

// CPUInspector implements domain.SystemInspector with gopsutil and sysfs.
type CPUInspector struct {
	fs     domain.FileSystemManager
	root   string
	logger *zap.Logger
}

// NewCPUInspector creates an inspector reading the real sysfs tree.
func NewCPUInspector(fs domain.FileSystemManager, logger *zap.Logger) *CPUInspector {
	return NewCPUInspectorWithRoot(fs, DefaultSysfsCPURoot, logger)
}

// NewCPUInspectorWithRoot creates an inspector over a custom sysfs root (for testing).
func NewCPUInspectorWithRoot(fs domain.FileSystemManager, root string, logger *zap.Logger) *CPUInspector {
	return &CPUInspector{fs: fs, root: root, logger: logger}
}

// Snapshot collects CPU details. Every source is best effort: missing
// sysfs entries or gopsutil errors leave the matching fields empty.
func (i *CPUInspector) Snapshot(ctx context.Context) (*domain.CPUSnapshot, error) {
	snap := &domain.CPUSnapshot{
		KernelGovernors: make(map[string]int),
	}

	if infos, err := cpu.InfoWithContext(ctx); err != nil {
		i.logger.Debug("cpu info unavailable", zap.Error(err))
	} else if len(infos) > 0 {
		snap.Model = infos[0].ModelName
	}

	if n, err := cpu.CountsWithContext(ctx, false); err == nil {
		snap.PhysicalCores = n
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		snap.LogicalCores = n
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	i.readScaling(snap)
	return snap, nil
}

func (i *CPUInspector) readScaling(snap *domain.CPUSnapshot) {
	dirs, err := i.fs.Glob(filepath.Join(i.root, "cpu[0-9]*", "cpufreq"))
	if err != nil {
		i.logger.Debug("cpufreq glob failed", zap.Error(err))
		return
	}

	var totalMHz float64
	var samples int
	for _, dir := range dirs {
		if gov, err := i.fs.ReadTrimmed(filepath.Join(dir, "scaling_governor")); err == nil && gov != "" {
			snap.KernelGovernors[gov]++
		}
		if snap.Driver == "" {
			if driver, err := i.fs.ReadTrimmed(filepath.Join(dir, "scaling_driver")); err == nil {
				snap.Driver = driver
			}
		}
		raw, err := i.fs.ReadTrimmed(filepath.Join(dir, "scaling_cur_freq"))
		if err != nil {
			continue
		}
		khz, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		totalMHz += khz / 1000
		samples++
	}

	if samples > 0 {
		snap.AverageMHz = totalMHz / float64(samples)
	}
}

// Ensure CPUInspector implements domain.SystemInspector.
var _ domain.SystemInspector = (*CPUInspector)(nil)
