package pipeline

import (
	"context"
	"fmt"

	"github.com/dd0wney/cluso-ontograph/pkg/annotation"
	"github.com/dd0wney/cluso-ontograph/pkg/logging"
	"github.com/dd0wney/cluso-ontograph/pkg/metrics"
	"github.com/dd0wney/cluso-ontograph/pkg/ontology"
	"github.com/dd0wney/cluso-ontograph/pkg/profile"
)

// LoadOntology reads the profile's ontology file. Unresolved parent
// references are logged; builders report them when they reach them.
func LoadOntology(p *profile.Profile, logger logging.Logger, reg *metrics.Registry) (*ontology.Ontology, error) {
	timer := logging.StartTimer(logger, "ontology loaded", logging.Path(p.Ontology.Path))
	o, err := ontology.LoadFile(p.Ontology.Path, ontology.ParseOptions{Relationships: p.Ontology.Relationships})
	if err != nil {
		timer.EndError(err)
		return nil, err
	}

	dangling := o.Dangling()
	for child, parents := range dangling {
		logger.Warn("unresolved parent reference", logging.TermID(child), logging.Strings("parents", parents))
	}
	timer.End(logging.Count(o.Len()))
	if reg != nil {
		reg.UpdateOntologyMetrics(o.Len(), len(dangling))
	}
	return o, nil
}

// LoadAnnotations reads the profile's annotation source, if any.
func LoadAnnotations(ctx context.Context, p *profile.Profile, logger logging.Logger) ([]annotation.Row, error) {
	a := p.Annotation
	var (
		table  *annotation.Table
		err    error
		source string
	)
	switch {
	case a.CSV != "":
		source = a.CSV
		table, err = annotation.LoadCSV(a.CSV, a.CSVOptions())
	case a.PostgresURL != "":
		source = "postgres:" + a.PostgresTable
		table, err = annotation.LoadPostgres(ctx, a.PostgresURL, a.PostgresTable)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load annotations: %w", err)
	}

	if !table.HasColumn(a.JoinColumn) {
		return nil, fmt.Errorf("annotation source %s has no join column %q", source, a.JoinColumn)
	}
	missing := 0
	for _, key := range table.Column(a.JoinColumn) {
		if key == nil {
			missing++
		}
	}
	if missing > 0 {
		logger.Warn("annotation rows without join key are ignored",
			logging.Path(source), logging.String("column", a.JoinColumn), logging.Count(missing))
	}
	logger.Info("annotations loaded", logging.Path(source), logging.Count(len(table.Rows)))
	return table.Rows, nil
}
