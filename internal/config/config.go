package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/gcfg.v1"

	"fe-shell-renderer/internal/dataset"
	"fe-shell-renderer/internal/endian"
	"fe-shell-renderer/internal/vertexbuf"
)

// Config holds input paths and render settings for a batch run.
// It can be read from JSON or from an INI file with a [render] section.
type Config struct {
	// Inputs: raw buffer dumps, no headers.
	Undeformed string   `json:"undeformed" gcfg:"undeformed"`
	Topology   string   `json:"topology" gcfg:"topology"`
	States     []string `json:"states" gcfg:"state"`
	ByteOrder  string   `json:"byte_order" gcfg:"byte-order"`
	NumParts   int      `json:"num_parts" gcfg:"num-parts"`

	// Optional part names, one per line.
	PartNames     string `json:"part_names" gcfg:"part-names"`
	NamesEncoding string `json:"names_encoding" gcfg:"names-encoding"`

	// Output
	OutputDir string `json:"output_dir" gcfg:"output-dir"`
	Format    string `json:"format" gcfg:"format"`
	ExportGLB bool   `json:"export_glb" gcfg:"export-glb"`
	Legend    bool   `json:"legend" gcfg:"legend"`

	// Render settings
	ColorMode    string  `json:"color_mode" gcfg:"color-mode"`
	RenderSize   int     `json:"render_size" gcfg:"render-size"`
	Supersample  int     `json:"supersample" gcfg:"supersample"`
	Gamma        float64 `json:"gamma" gcfg:"gamma"`
	ViewYaw      float64 `json:"view_yaw" gcfg:"view-yaw"`
	ViewPitch    float64 `json:"view_pitch" gcfg:"view-pitch"`
	Perspective  bool    `json:"perspective" gcfg:"perspective"`
	Workers      int     `json:"workers" gcfg:"workers"`
	CacheEntries int     `json:"cache_entries" gcfg:"cache-entries"`
	LogLevel     string  `json:"log_level" gcfg:"log-level"`
}

type iniFile struct {
	Render Config
}

// Load reads a config file. Files ending in .ini or .gcfg are parsed as INI,
// anything else as JSON. Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini", ".gcfg":
		var f iniFile
		if err := gcfg.ReadFileInto(&f, path); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
		return f.Render, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Undeformed string
	Topology   string
	States     []string
	OutputDir  string
	ColorMode  string
	Format     string
	Workers    int
	RenderSize int
	ExportGLB  bool
	LogLevel   string
}

// Resolve applies CLI overrides, then fills empty fields with defaults.
// Relative input paths are resolved against baseDir when it is non-empty.
func (c *Config) Resolve(flags Flags, baseDir string) {
	// CLI flags override config file
	if flags.Undeformed != "" {
		c.Undeformed = flags.Undeformed
	}
	if flags.Topology != "" {
		c.Topology = flags.Topology
	}
	if len(flags.States) > 0 {
		c.States = flags.States
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.ColorMode != "" {
		c.ColorMode = flags.ColorMode
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.RenderSize > 0 {
		c.RenderSize = flags.RenderSize
	}
	if flags.ExportGLB {
		c.ExportGLB = true
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if baseDir != "" {
		c.Undeformed = resolvePath(baseDir, c.Undeformed)
		c.Topology = resolvePath(baseDir, c.Topology)
		c.PartNames = resolvePath(baseDir, c.PartNames)
		for i, s := range c.States {
			c.States[i] = resolvePath(baseDir, s)
		}
		c.OutputDir = resolvePath(baseDir, c.OutputDir)
	}

	// Defaults
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.ByteOrder == "" {
		c.ByteOrder = "native"
	}
	if c.ColorMode == "" {
		c.ColorMode = "part"
	}
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Gamma <= 0 {
		c.Gamma = 2.2
	}
	if c.ViewYaw == 0 && c.ViewPitch == 0 {
		c.ViewYaw, c.ViewPitch = 30, -25
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.CacheEntries <= 0 {
		c.CacheEntries = 64
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Validate reports every missing input and unknown setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Undeformed == "" {
		errs = append(errs, errors.New("config: undeformed coordinates path is required"))
	}
	if c.Topology == "" {
		errs = append(errs, errors.New("config: topology path is required"))
	}
	if len(c.States) == 0 {
		errs = append(errs, errors.New("config: at least one state is required"))
	}
	if _, ok := endian.Parse(c.ByteOrder); !ok {
		errs = append(errs, fmt.Errorf("config: unknown byte order %q", c.ByteOrder))
	}
	if _, err := vertexbuf.ParseMode(c.ColorMode); err != nil {
		errs = append(errs, fmt.Errorf("config: %w", err))
	}
	if !dataset.ValidNamesEncoding(c.NamesEncoding) {
		errs = append(errs, fmt.Errorf("config: unknown names encoding %q", c.NamesEncoding))
	}
	if c.Format != "webp" && c.Format != "tga" {
		errs = append(errs, fmt.Errorf("config: unknown format %q", c.Format))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseLevel maps a log level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("config: unknown log level %q", s)
	}
	return l, nil
}

// Mode returns the configured color mode. Call after Validate.
func (c *Config) Mode() vertexbuf.Mode {
	m, _ := vertexbuf.ParseMode(c.ColorMode)
	return m
}
