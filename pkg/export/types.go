package export

import (
	"fmt"
	"strings"
)

// Format selects the serialization written by Write.
type Format string

const (
	FormatGraphML Format = "graphml"
	FormatJSON    Format = "json" // node-link JSON
)

// CompressedSuffix marks output paths written through snappy framing.
const CompressedSuffix = ".sz"

// Options holds options for writing a graph
type Options struct {
	Format Format
	Pretty bool // indent JSON and GraphML output
}

// ParseFormat maps a format name to a Format. Empty means GraphML.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case "", FormatGraphML:
		return FormatGraphML, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported export format: %s", name)
}

// FormatForPath guesses the format from a file name, ignoring a
// compression suffix.
func FormatForPath(path string) Format {
	path = strings.TrimSuffix(strings.ToLower(path), CompressedSuffix)
	if strings.HasSuffix(path, ".json") {
		return FormatJSON
	}
	return FormatGraphML
}
