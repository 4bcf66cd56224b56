package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"fe-shell-renderer/internal/contour"
	"fe-shell-renderer/internal/dataset"
	"fe-shell-renderer/internal/meshbuf"
	"fe-shell-renderer/internal/palette"
)

type stringList []string

func (s *stringList) String() string     { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error { *s = append(*s, v); return nil }

func main() {
	undeformed := flag.String("undeformed", "", "Undeformed node coordinates dump")
	topology := flag.String("topology", "", "Shell topology dump")
	var states stringList
	flag.Var(&states, "state", "Current node coordinates dump (repeatable)")
	byteOrder := flag.String("byte-order", "native", "Byte order of the dumps: native, little or big")
	numParts := flag.Int("parts", 0, "Number of parts (default: highest part id + 1)")
	partNames := flag.String("names", "", "Part names file, one per line")
	namesEncoding := flag.String("names-encoding", "", "Encoding of the names file (default: utf-8)")
	levels := flag.Bool("levels", false, "Print all contour thresholds per state")
	flag.Parse()

	if *undeformed == "" || *topology == "" {
		fmt.Fprintln(os.Stderr, "Usage: inspect -undeformed FILE -topology FILE [-state FILE]...")
		os.Exit(2)
	}

	ds, err := dataset.Load(*undeformed, *topology, states, *byteOrder)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if *partNames != "" {
		if ds.PartNames, err = dataset.ReadPartNames(*partNames, *namesEncoding); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Nodes: %d, Elements: %d, Swap: %v\n", ds.NodeCount(), ds.ElementCount(), ds.Swap())
	if lo, hi, ok := meshbuf.Bounds(ds.Undeformed, ds.Decoder); ok {
		fmt.Printf("  BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n", lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])
		size := hi.Sub(lo)
		fmt.Printf("  Size: %.3f x %.3f x %.3f\n", size[0], size[1], size[2])
	}

	parts, err := ds.Parts(*numParts)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Parts:")
	for p, sel := range parts {
		if len(sel) == 0 {
			continue
		}
		c := palette.PartColor(p).NRGBA()
		fmt.Printf("  Part[%d] %q: elements=%d, color=#%02x%02x%02x\n", p, ds.PartName(p), len(sel), c.R, c.G, c.B)
	}

	for _, st := range ds.States {
		l, err := contour.Compute(ds.Undeformed, st.Coords, ds.NodeCount(), ds.Decoder)
		if err != nil {
			fmt.Printf("State %s: %v\n", st.Name, err)
			continue
		}
		fmt.Printf("State %s: max displacement %.4g\n", st.Name, l.Max())
		if *levels {
			for k, th := range l {
				fmt.Printf("    level[%02d] < %.4g\n", k, th)
			}
		}
	}
}
