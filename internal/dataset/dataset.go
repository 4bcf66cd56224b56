// Package dataset loads the raw buffer dumps a render run works from.
// Files are read as opaque bytes; only record alignment and node counts are
// checked. Decoding is left to meshbuf.
package dataset

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fe-shell-renderer/internal/endian"
	"fe-shell-renderer/internal/meshbuf"
)

// State is one set of current node coordinates.
type State struct {
	Name   string
	Coords meshbuf.Coords
}

// Dataset is a mesh with one or more deformed states.
type Dataset struct {
	Undeformed meshbuf.Coords
	Topology   meshbuf.Topology
	States     []State
	Order      binary.ByteOrder
	Decoder    meshbuf.Decoder
	PartNames  []string // optional, indexed by 0-based part id
}

// Load reads the undeformed coordinates, topology and every state file.
// byteOrder is "native", "little" or "big".
func Load(undefPath, topoPath string, statePaths []string, byteOrder string) (*Dataset, error) {
	order, ok := endian.Parse(byteOrder)
	if !ok {
		return nil, fmt.Errorf("dataset: unknown byte order %q", byteOrder)
	}

	undef, err := readCoords(undefPath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(topoPath)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", topoPath, err)
	}
	top := meshbuf.Topology(data)
	if err := top.Check("topology"); err != nil {
		return nil, fmt.Errorf("dataset: load %s: %w", topoPath, err)
	}

	ds := &Dataset{
		Undeformed: undef,
		Topology:   top,
		Order:      order,
		Decoder:    meshbuf.NewDecoder(order),
	}
	for _, p := range statePaths {
		c, err := readCoords(p)
		if err != nil {
			return nil, err
		}
		if err := ds.AddState(StateName(p), c); err != nil {
			return nil, fmt.Errorf("dataset: load %s: %w", p, err)
		}
	}
	return ds, nil
}

func readCoords(path string) (meshbuf.Coords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	c := meshbuf.Coords(data)
	if err := c.Check(filepath.Base(path)); err != nil {
		return nil, fmt.Errorf("dataset: load %s: %w", path, err)
	}
	return c, nil
}

// AddState appends a state. Its node count must match the undeformed mesh.
func (ds *Dataset) AddState(name string, c meshbuf.Coords) error {
	if got, want := c.NodeCount(), ds.Undeformed.NodeCount(); got != want {
		return &meshbuf.CapacityError{Buffer: name, Need: want, Have: got, Element: -1}
	}
	ds.States = append(ds.States, State{Name: name, Coords: c})
	return nil
}

// StateName derives a state name from its file path.
func StateName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// NodeCount returns the number of nodes in the mesh.
func (ds *Dataset) NodeCount() int { return ds.Undeformed.NodeCount() }

// ElementCount returns the number of shell elements.
func (ds *Dataset) ElementCount() int { return ds.Topology.ElementCount() }

// Swap reports whether the buffers need byte swapping on this host.
func (ds *Dataset) Swap() bool { return ds.Decoder.Swap }

// Parts groups elements by part id. numParts <= 0 sizes the list from the
// largest part id present.
func (ds *Dataset) Parts(numParts int) ([]meshbuf.Selection, error) {
	parts, err := meshbuf.PartLists(ds.Topology, ds.Decoder, numParts)
	if err != nil {
		return nil, fmt.Errorf("dataset: group parts: %w", err)
	}
	return parts, nil
}

// Write stores a dataset as raw dumps in dir using the dataset's byte order:
// undeformed.bin, topology.bin and one <state>.bin per state.
func (ds *Dataset) Write(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("dataset: create %s: %w", dir, err)
	}
	files := map[string][]byte{
		"undeformed.bin": ds.Undeformed,
		"topology.bin":   ds.Topology,
	}
	for _, s := range ds.States {
		files[s.Name+".bin"] = s.Coords
	}
	for name, data := range files {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, data, 0o644); err != nil {
			return fmt.Errorf("dataset: write %s: %w", p, err)
		}
	}
	return nil
}
