package dataset

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Part names files hold one name per line, line N naming 0-based part N-1.
// Exporters of older solvers write them in a legacy code page.
var nameEncodings = map[string]encoding.Encoding{
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"cp437":        charmap.CodePage437,
	"cp850":        charmap.CodePage850,
}

// ValidNamesEncoding reports whether enc is accepted by ReadPartNames.
func ValidNamesEncoding(enc string) bool {
	switch strings.ToLower(enc) {
	case "", "utf-8", "utf8":
		return true
	}
	_, ok := nameEncodings[strings.ToLower(enc)]
	return ok
}

// ReadPartNames reads a part names file. enc is "" or "utf-8" for UTF-8
// input, otherwise one of the single-byte code pages above.
func ReadPartNames(path, enc string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	return DecodePartNames(data, enc)
}

// DecodePartNames splits data into names, decoding it from enc first.
// Trailing blank lines are dropped; blank lines in between keep their slot.
func DecodePartNames(data []byte, enc string) ([]string, error) {
	if !ValidNamesEncoding(enc) {
		return nil, fmt.Errorf("dataset: unknown names encoding %q", enc)
	}
	if e, ok := nameEncodings[strings.ToLower(enc)]; ok {
		decoded, err := e.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("dataset: decode part names: %w", err)
		}
		data = decoded
	}

	var names []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		names = append(names, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dataset: scan part names: %w", err)
	}
	for len(names) > 0 && names[len(names)-1] == "" {
		names = names[:len(names)-1]
	}
	return names, nil
}

// PartName returns the configured name of 0-based part p, or "part <p+1>"
// when none is set.
func (ds *Dataset) PartName(p int) string {
	if p >= 0 && p < len(ds.PartNames) && ds.PartNames[p] != "" {
		return ds.PartNames[p]
	}
	return fmt.Sprintf("part %d", p+1)
}
