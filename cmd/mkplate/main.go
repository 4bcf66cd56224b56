package main

import (
	"flag"
	"fmt"
	"os"

	"fe-shell-renderer/internal/dataset"
	"fe-shell-renderer/internal/endian"
)

func main() {
	out := flag.String("output", "plate", "Output directory")
	nx := flag.Int("nx", 40, "Elements along X")
	ny := flag.Int("ny", 20, "Elements along Y")
	width := flag.Float64("width", 4, "Plate width")
	height := flag.Float64("height", 2, "Plate height")
	parts := flag.Int("parts", 4, "Number of parts (bands along X)")
	steps := flag.Int("steps", 10, "Number of deformed states")
	amp := flag.Float64("amplitude", 0.5, "Peak out-of-plane displacement of the last state")
	byteOrder := flag.String("byte-order", "native", "Byte order of the dumps: native, little or big")
	flag.Parse()

	order, ok := endian.Parse(*byteOrder)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown byte order %q\n", *byteOrder)
		os.Exit(2)
	}

	ds, err := dataset.Plate(dataset.PlateSpec{
		NX: *nx, NY: *ny,
		Width: float32(*width), Height: float32(*height),
		Parts:     *parts,
		Steps:     *steps,
		Amplitude: float32(*amp),
	}, order)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := ds.Write(*out); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d nodes, %d elements, %d states to %s\n",
		ds.NodeCount(), ds.ElementCount(), len(ds.States), *out)
}
