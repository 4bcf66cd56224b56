package batch

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"

	"fe-shell-renderer/internal/contour"
	"fe-shell-renderer/internal/dataset"
	"fe-shell-renderer/internal/export"
	"fe-shell-renderer/internal/meshbuf"
	"fe-shell-renderer/internal/postprocess"
	"fe-shell-renderer/internal/raster"
	"fe-shell-renderer/internal/shellview"
	"fe-shell-renderer/internal/vbcache"
	"fe-shell-renderer/internal/vertexbuf"
	"fe-shell-renderer/internal/viewmatrix"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Dataset     *dataset.Dataset
	Parts       []meshbuf.Selection
	OutputDir   string
	Mode        vertexbuf.Mode
	Format      string // "webp" or "tga"
	RenderSize  int
	Supersample int
	Gamma       float64 // display gamma, 2.2 if zero
	Workers     int
	View        viewmatrix.Options
	Legend      bool
	ExportGLB   bool
	Cache       *vbcache.Cache // optional
	Logger      *slog.Logger   // optional
}

// Result holds the outcome of rendering one state.
type Result struct {
	State    string
	Image    string
	GLB      string
	Vertices int
	Levels   contour.Levels
	Success  bool
	Error    string
}

// Run renders every state of the dataset using a worker pool. Results are in
// state order.
func Run(cfg Config) []Result {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	states := cfg.Dataset.States
	total := len(states)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.Info("progress", "done", p, "total", total,
						"rate", fmt.Sprintf("%.1f states/sec", float64(p)/elapsed))
				}
			}
		}
	}()

	// Worker pool
	stateChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			view := shellview.New(shellview.WithLogger(log))
			for idx := range stateChan {
				results[idx] = processState(cfg, view, states[idx])
				if !results[idx].Success {
					log.Warn("state failed", "state", states[idx].Name, "error", results[idx].Error)
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range states {
		stateChan <- i
	}
	close(stateChan)

	wg.Wait()
	close(done)

	return results
}

func processState(cfg Config, view *shellview.View, st dataset.State) Result {
	ds := cfg.Dataset
	res := Result{State: st.Name}
	fail := func(err error) Result {
		res.Error = err.Error()
		return res
	}

	if cfg.Mode == vertexbuf.ColorByContour {
		if err := view.UpdateContourLimits(ds.Undeformed, st.Coords, ds.NodeCount(), ds.Swap()); err != nil {
			return fail(err)
		}
		res.Levels = view.Levels()
	}

	packed, err := PackParts(view, cfg.Cache, ds, st, cfg.Parts, cfg.Mode)
	if err != nil {
		return fail(err)
	}
	for _, buf := range packed {
		res.Vertices += vertexbuf.VertexCount(buf)
	}

	img := raster.RenderParts(packed, cfg.View, cfg.RenderSize, cfg.Supersample, cfg.Gamma)

	// Post-processing: supersample downsample
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.Supersample)
	}
	if cfg.Legend {
		img = postprocess.DrawLegend(img, legendEntries(cfg, res.Levels))
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fail(err)
	}
	res.Image = st.Name + "." + cfg.Format
	if err := writeImage(filepath.Join(cfg.OutputDir, res.Image), img, cfg.Format); err != nil {
		return fail(err)
	}

	if cfg.ExportGLB {
		res.GLB = st.Name + ".glb"
		parts := make([]export.Part, len(packed))
		for i, buf := range packed {
			parts[i] = export.Part{Name: ds.PartName(i), Vertices: buf}
		}
		if err := export.SaveGLB(filepath.Join(cfg.OutputDir, res.GLB), parts); err != nil {
			return fail(err)
		}
	}

	res.Success = true
	return res
}

// PackParts packs every part of one state, going through cache when it is
// non-nil. One snapshot of the view's levels serves every cache key and
// every pack, so keys always match the levels a buffer was built with.
func PackParts(view *shellview.View, cache *vbcache.Cache, ds *dataset.Dataset, st dataset.State,
	parts []meshbuf.Selection, mode vertexbuf.Mode) ([][]float32, error) {
	in := vertexbuf.Input{Undeformed: ds.Undeformed, Current: st.Coords, Topology: ds.Topology}
	levels := view.Levels()

	packed := make([][]float32, len(parts))
	for i, sel := range parts {
		build := func() ([]float32, error) {
			out := make([]float32, vertexbuf.Required(len(sel)))
			if _, err := view.Pack(sel, in, out, mode, &levels, ds.Decoder); err != nil {
				return nil, fmt.Errorf("batch: pack part %d of %s: %w", i+1, st.Name, err)
			}
			return out, nil
		}
		var (
			buf []float32
			err error
		)
		if cache != nil {
			buf, err = cache.GetOrBuild(vbcache.KeyOf(sel, in, mode, &levels, ds.Swap()), build)
		} else {
			buf, err = build()
		}
		if err != nil {
			return nil, err
		}
		packed[i] = buf
	}
	return packed, nil
}

func legendEntries(cfg Config, levels contour.Levels) []postprocess.LegendEntry {
	if cfg.Mode == vertexbuf.ColorByContour {
		return postprocess.ContourEntries(levels)
	}
	ids := make([]int, 0, len(cfg.Parts))
	for p, sel := range cfg.Parts {
		if len(sel) > 0 {
			ids = append(ids, p)
		}
	}
	return postprocess.PartEntries(ids, cfg.Dataset.PartName)
}

func writeImage(path string, img image.Image, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case "tga":
		err = tga.Encode(f, img)
	default:
		err = nativewebp.Encode(f, img, nil)
	}
	if err != nil {
		return fmt.Errorf("batch: encode %s: %w", path, err)
	}
	return f.Close()
}
