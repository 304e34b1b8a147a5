package main

import (
	"log"
	"net/http"

	"github.com/Ko-stant/dungeon-map-engine/internal/tilemap"
	"github.com/Ko-stant/dungeon-map-engine/internal/ws"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	StartProfiling(cfg.Profiling)

	reg := tilemap.NewRegistry()
	var world *World
	if cfg.PackPath != "" {
		pack, err := LoadPackFromFile(cfg.PackPath)
		if err != nil {
			log.Fatalf("failed to load pack %s: %v", cfg.PackPath, err)
		}
		world = NewWorld(reg, pack.ID)
		root, err := BuildWorldFromPack(reg, world, pack)
		if err != nil {
			log.Fatalf("failed to build pack %s: %v", cfg.PackPath, err)
		}
		world.SetRoot(root)
		log.Printf("loaded pack %s with %d maps", pack.ID, len(pack.Maps))
	} else {
		world = NewWorld(reg, "demo-keep@v1")
		world.SetRoot(buildDemoWorld(reg, world))
		log.Printf("built demo world with %d maps", reg.Len())
	}

	metrics := NewPerformanceMetrics()
	StartMetricsReporting(metrics, cfg.MetricsInterval)
	svc := NewInstrumentedMapService(world, metrics)

	hub := ws.NewHub()
	mux := http.NewServeMux()
	registerRoutes(mux, svc, hub, log.Default())

	log.Printf("listening on :%s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, mux))
}
