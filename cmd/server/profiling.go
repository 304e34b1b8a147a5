package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"
	"runtime"
	"sync"
	"time"

	"github.com/Ko-stant/dungeon-map-engine/internal/protocol"
)

// StartProfiling starts the profiling server and sets up profiling
func StartProfiling(config ProfilingConfig) {
	if !config.Enabled {
		return
	}

	// Set up runtime profiling parameters
	runtime.SetBlockProfileRate(1)
	runtime.SetMutexProfileFraction(1)

	// Start pprof server on separate port
	if config.Port != "" {
		go func() {
			log.Printf("Starting pprof server on :%s", config.Port)
			log.Printf("CPU profile: http://localhost:%s/debug/pprof/profile", config.Port)
			log.Printf("Heap profile: http://localhost:%s/debug/pprof/heap", config.Port)
			log.Printf("Mutex profile: http://localhost:%s/debug/pprof/mutex", config.Port)

			if err := http.ListenAndServe(":"+config.Port, nil); err != nil {
				log.Printf("pprof server failed: %v", err)
			}
		}()
	}
}

// PerformanceMetrics holds performance tracking data
type PerformanceMetrics struct {
	mu               sync.Mutex
	IntentsProcessed int64
	IntentsRejected  int64
	SnapshotsBuilt   int64
	AvgIntentTime    time.Duration
	AvgSnapshotTime  time.Duration
	PeakGoroutines   int
	PeakMemoryUsage  uint64
	StartTime        time.Time
}

// NewPerformanceMetrics creates a new performance metrics tracker
func NewPerformanceMetrics() *PerformanceMetrics {
	return &PerformanceMetrics{
		StartTime: time.Now(),
	}
}

// TrackIntent records metrics for one processed intent
func (pm *PerformanceMetrics) TrackIntent(duration time.Duration, rejected bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.IntentsProcessed++
	if rejected {
		pm.IntentsRejected++
	}
	// Simple running average
	pm.AvgIntentTime = (pm.AvgIntentTime*time.Duration(pm.IntentsProcessed-1) + duration) / time.Duration(pm.IntentsProcessed)
}

// TrackSnapshot records metrics for one snapshot build
func (pm *PerformanceMetrics) TrackSnapshot(duration time.Duration) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.SnapshotsBuilt++
	pm.AvgSnapshotTime = (pm.AvgSnapshotTime*time.Duration(pm.SnapshotsBuilt-1) + duration) / time.Duration(pm.SnapshotsBuilt)
}

// UpdateSystemMetrics updates system-level metrics
func (pm *PerformanceMetrics) UpdateSystemMetrics() {
	goroutines := runtime.NumGoroutine()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	pm.mu.Lock()
	defer pm.mu.Unlock()
	if goroutines > pm.PeakGoroutines {
		pm.PeakGoroutines = goroutines
	}
	if m.Alloc > pm.PeakMemoryUsage {
		pm.PeakMemoryUsage = m.Alloc
	}
}

// LogMetrics logs current performance metrics
func (pm *PerformanceMetrics) LogMetrics() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	uptime := time.Since(pm.StartTime)
	log.Printf("=== Performance Metrics ===")
	log.Printf("Uptime: %v", uptime)
	log.Printf("Intents processed: %d", pm.IntentsProcessed)
	log.Printf("Intents rejected: %d", pm.IntentsRejected)
	log.Printf("Snapshots built: %d", pm.SnapshotsBuilt)
	log.Printf("Average intent time: %v", pm.AvgIntentTime)
	log.Printf("Average snapshot time: %v", pm.AvgSnapshotTime)
	log.Printf("Peak goroutines: %d", pm.PeakGoroutines)
	log.Printf("Peak memory usage: %d bytes", pm.PeakMemoryUsage)

	if pm.IntentsProcessed > 0 {
		intentsPerSecond := float64(pm.IntentsProcessed) / uptime.Seconds()
		log.Printf("Intents per second: %.2f", intentsPerSecond)
	}
}

// InstrumentedMapService wraps MapService with performance tracking
type InstrumentedMapService struct {
	service MapService
	metrics *PerformanceMetrics
}

func NewInstrumentedMapService(service MapService, metrics *PerformanceMetrics) *InstrumentedMapService {
	return &InstrumentedMapService{
		service: service,
		metrics: metrics,
	}
}

func (is *InstrumentedMapService) PaintTile(req protocol.RequestPaintTile) ([]protocol.TileChanged, error) {
	start := time.Now()
	result, err := is.service.PaintTile(req)
	is.metrics.TrackIntent(time.Since(start), err != nil)
	is.metrics.UpdateSystemMetrics()
	return result, err
}

func (is *InstrumentedMapService) RotateMap(req protocol.RequestRotateMap) (*protocol.MapLayoutChanged, error) {
	start := time.Now()
	result, err := is.service.RotateMap(req)
	is.metrics.TrackIntent(time.Since(start), err != nil)
	is.metrics.UpdateSystemMetrics()
	return result, err
}

func (is *InstrumentedMapService) AddPortal(req protocol.RequestAddPortal) (*protocol.MapLayoutChanged, error) {
	start := time.Now()
	result, err := is.service.AddPortal(req)
	is.metrics.TrackIntent(time.Since(start), err != nil)
	is.metrics.UpdateSystemMetrics()
	return result, err
}

func (is *InstrumentedMapService) LinkSubMap(req protocol.RequestLinkSubMap) (*protocol.MapLayoutChanged, error) {
	start := time.Now()
	result, err := is.service.LinkSubMap(req)
	is.metrics.TrackIntent(time.Since(start), err != nil)
	is.metrics.UpdateSystemMetrics()
	return result, err
}

func (is *InstrumentedMapService) CloneMap(req protocol.RequestCloneMap) (*protocol.MapRegistered, error) {
	start := time.Now()
	result, err := is.service.CloneMap(req)
	is.metrics.TrackIntent(time.Since(start), err != nil)
	is.metrics.UpdateSystemMetrics()
	return result, err
}

func (is *InstrumentedMapService) RetireMap(req protocol.RequestRetireMap) (*protocol.MapRetired, error) {
	start := time.Now()
	result, err := is.service.RetireMap(req)
	is.metrics.TrackIntent(time.Since(start), err != nil)
	is.metrics.UpdateSystemMetrics()
	return result, err
}

func (is *InstrumentedMapService) Snapshot() protocol.Snapshot {
	start := time.Now()
	snap := is.service.Snapshot()
	is.metrics.TrackSnapshot(time.Since(start))
	return snap
}

func (is *InstrumentedMapService) NextEventID() int64 {
	return is.service.NextEventID()
}

// StartMetricsReporting starts periodic metrics reporting
func StartMetricsReporting(metrics *PerformanceMetrics, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			metrics.LogMetrics()
		}
	}()
}
