package profiler

import (
	"log"
	"math"
	"runtime"
	"time"
)

// Profiler tracks frame rate, frame time spread, and memory statistics for
// performance monitoring. Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastFrame      time.Time
	lastReport     time.Time
	updateInterval time.Duration

	minFrameMs float64
	maxFrameMs float64

	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	now := time.Now()
	return &Profiler{
		lastFrame:      now,
		lastReport:     now,
		updateInterval: time.Second,
		minFrameMs:     math.Inf(1),
	}
}

// SetUpdateInterval changes how often stats are logged. Values <= 0 are ignored.
//
// Parameters:
//   - interval: the time between log lines
func (p *Profiler) SetUpdateInterval(interval time.Duration) {
	if interval > 0 {
		p.updateInterval = interval
	}
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, min/max frame time, heap usage, allocation rate,
// GC count, and total memory obtained from the OS.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	now := time.Now()
	frameMs := float64(now.Sub(p.lastFrame).Microseconds()) / 1000
	p.lastFrame = now
	p.frameCount++

	if frameMs < p.minFrameMs {
		p.minFrameMs = frameMs
	}
	if frameMs > p.maxFrameMs {
		p.maxFrameMs = frameMs
	}

	elapsed := now.Sub(p.lastReport)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	// Alloc: bytes of live heap objects. TotalAlloc: cumulative heap bytes, tracks
	// allocation churn. Sys: memory obtained from the OS (process footprint).
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	gcDelta := gcCount - p.lastGCCount

	log.Printf("[Profiler] FPS: %.2f | Frame: %.2f-%.2f ms | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: +%d | Sys: %.2f MB",
		fps, p.minFrameMs, p.maxFrameMs, allocMB, allocRateMB, gcDelta, sysMB)

	p.frameCount = 0
	p.minFrameMs = math.Inf(1)
	p.maxFrameMs = 0
	p.lastReport = now
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
