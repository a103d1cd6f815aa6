package limiter

import (
	"runtime"

	"github.com/aleister1102/diffsense/internal/common/errorwrapper"
	"github.com/aleister1102/diffsense/internal/config"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/mem"
)

// ResourceGuard refuses new comparisons when the process lacks memory
// headroom. Alignment cost grows quadratically with token count, so the
// guard is the external mitigation the engine itself does not carry.
type ResourceGuard struct {
	config config.ResourceLimiterConfig
	logger zerolog.Logger
}

// ResourceUsage represents current resource usage.
type ResourceUsage struct {
	AllocMB          int64
	SysMB            int64
	Goroutines       int
	SystemMemUsedMB  int64
	SystemMemTotalMB int64
	SystemMemPercent float64
}

// NewResourceGuard creates a resource guard.
func NewResourceGuard(cfg config.ResourceLimiterConfig, logger zerolog.Logger) *ResourceGuard {
	return &ResourceGuard{
		config: cfg,
		logger: logger.With().Str("component", "ResourceGuard").Logger(),
	}
}

// CheckHeadroom returns an error when allocated memory exceeds the
// configured ceiling.
func (g *ResourceGuard) CheckHeadroom() error {
	if !g.config.Enabled || g.config.MaxMemoryMB <= 0 {
		return nil
	}

	usage := g.Usage()
	if usage.AllocMB > int64(g.config.MaxMemoryMB) {
		g.logger.Warn().
			Int64("alloc_mb", usage.AllocMB).
			Int("max_memory_mb", g.config.MaxMemoryMB).
			Msg("Memory ceiling exceeded, refusing new comparison")
		return errorwrapper.WrapError(errorwrapper.ErrResourceExhausted, "memory ceiling exceeded")
	}
	return nil
}

// Usage returns current process and system memory statistics.
func (g *ResourceGuard) Usage() ResourceUsage {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	usage := ResourceUsage{
		AllocMB:    int64(m.Alloc / 1024 / 1024),
		SysMB:      int64(m.Sys / 1024 / 1024),
		Goroutines: runtime.NumGoroutine(),
	}

	if vmStat, err := mem.VirtualMemory(); err == nil {
		usage.SystemMemUsedMB = int64(vmStat.Used / 1024 / 1024)
		usage.SystemMemTotalMB = int64(vmStat.Total / 1024 / 1024)
		usage.SystemMemPercent = vmStat.UsedPercent
	}

	return usage
}
