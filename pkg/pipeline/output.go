package pipeline

import (
	"fmt"

	"github.com/dd0wney/cluso-ontograph/pkg/export"
	"github.com/dd0wney/cluso-ontograph/pkg/profile"
)

// Export writes a copy of the result graph to the output path, with
// sample nodes flagged and, optionally, nodes relabeled as "id: name".
// The result graph itself is not modified.
func Export(res *Result, h export.TermLookup, out profile.OutputSection) error {
	if out.Path == "" {
		return nil
	}

	g := res.Graph.Clone()
	if _, err := export.MarkSamples(g); err != nil {
		return err
	}
	if out.Relabel {
		var err error
		if g, err = export.Relabel(g, h); err != nil {
			return err
		}
	}

	if err := export.WriteFile(out.Path, g, out.ExportOptions()); err != nil {
		return fmt.Errorf("failed to export %s: %w", g, err)
	}
	return nil
}
