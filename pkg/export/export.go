package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-ontograph/pkg/graph"
)

// Write serializes g to writer in the requested format.
func Write(writer io.Writer, g *graph.Graph, options Options) error {
	switch options.Format {
	case FormatGraphML, "":
		return writeGraphML(writer, g, options.Pretty)
	case FormatJSON:
		return writeJSON(writer, g, options.Pretty)
	default:
		return fmt.Errorf("unsupported export format: %s", options.Format)
	}
}

// WriteFile writes g to filename. A ".sz" suffix wraps the output in a
// snappy framed stream.
func WriteFile(filename string, g *graph.Graph, options Options) (retErr error) {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("failed to close export file: %w", closeErr)
		}
	}()

	if !strings.HasSuffix(filename, CompressedSuffix) {
		return Write(file, g, options)
	}

	zw := snappy.NewBufferedWriter(file)
	if err := Write(zw, g, options); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to flush compressed export: %w", err)
	}
	return nil
}

// OpenFile opens an exported file for reading, undoing snappy framing
// when the name ends in ".sz".
func OpenFile(filename string) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(filename, CompressedSuffix) {
		return file, nil
	}
	return struct {
		io.Reader
		io.Closer
	}{snappy.NewReader(file), file}, nil
}
