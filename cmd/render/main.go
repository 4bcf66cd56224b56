package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fe-shell-renderer/internal/batch"
	"fe-shell-renderer/internal/config"
	"fe-shell-renderer/internal/dataset"
	"fe-shell-renderer/internal/vbcache"
	"fe-shell-renderer/internal/viewmatrix"
)

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string     { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error { *s = append(*s, v); return nil }

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json or .ini)")
	undeformed := flag.String("undeformed", "", "Undeformed node coordinates dump")
	topology := flag.String("topology", "", "Shell topology dump")
	var states stringList
	flag.Var(&states, "state", "Current node coordinates dump (repeatable)")
	mode := flag.String("mode", "", "Color mode: part or contour (default: part)")
	format := flag.String("format", "", "Image format: webp or tga (default: webp)")
	size := flag.Int("size", 0, "Output image size in pixels (default: 512)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	glb := flag.Bool("glb", false, "Also export each state as .glb")
	logLevel := flag.String("log", "", "Log level: debug, info, warn, error")

	flag.Parse()

	// Load config
	var cfg config.Config
	baseDir := ""
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		baseDir = filepath.Dir(*configFile)
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Undeformed: *undeformed,
		Topology:   *topology,
		States:     states,
		OutputDir:  *outputDir,
		ColorMode:  *mode,
		Format:     *format,
		Workers:    *workers,
		RenderSize: *size,
		ExportGLB:  *glb,
		LogLevel:   *logLevel,
	}, baseDir)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration:\n%v\n", err)
		os.Exit(2)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	ds, err := dataset.Load(cfg.Undeformed, cfg.Topology, cfg.States, cfg.ByteOrder)
	if err != nil {
		log.Error("load dataset", "error", err)
		os.Exit(1)
	}
	if cfg.PartNames != "" {
		ds.PartNames, err = dataset.ReadPartNames(cfg.PartNames, cfg.NamesEncoding)
		if err != nil {
			log.Error("load part names", "error", err)
			os.Exit(1)
		}
	}
	parts, err := ds.Parts(cfg.NumParts)
	if err != nil {
		log.Error("group parts", "error", err, "byte_order", cfg.ByteOrder)
		os.Exit(1)
	}
	log.Info("dataset loaded",
		"nodes", ds.NodeCount(), "elements", ds.ElementCount(),
		"parts", len(parts), "states", len(ds.States), "swap", ds.Swap())

	cache, err := vbcache.New(cfg.CacheEntries)
	if err != nil {
		log.Error("create cache", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	log.Info("rendering",
		"mode", cfg.ColorMode, "format", cfg.Format, "size", cfg.RenderSize,
		"workers", cfg.Workers, "output", cfg.OutputDir)

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		Dataset:     ds,
		Parts:       parts,
		OutputDir:   cfg.OutputDir,
		Mode:        cfg.Mode(),
		Format:      cfg.Format,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		Gamma:       cfg.Gamma,
		Workers:     cfg.Workers,
		View: viewmatrix.Options{
			Yaw:         float32(cfg.ViewYaw),
			Pitch:       float32(cfg.ViewPitch),
			Perspective: cfg.Perspective,
		},
		Legend:    cfg.Legend,
		ExportGLB: cfg.ExportGLB,
		Cache:     cache,
		Logger:    log,
	}

	results := batch.Run(batchCfg)

	// Count results
	success, failed := 0, 0
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
		}
	}
	hits, misses := cache.Stats()
	log.Info("done",
		"elapsed", time.Since(start).Round(time.Millisecond),
		"rendered", success, "failed", failed,
		"cache_hits", hits, "cache_misses", misses)

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Warn("manifest write failed", "error", err)
	} else if err := batch.WriteManifest(manifestPath, batch.NewManifest(batchCfg, results)); err != nil {
		log.Warn("manifest write failed", "error", err)
	} else {
		log.Info("manifest written", "path", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
