// Package profile loads and validates YAML build profiles.
package profile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-ontograph/pkg/annotation"
	"github.com/dd0wney/cluso-ontograph/pkg/export"
	"github.com/dd0wney/cluso-ontograph/pkg/validation"
)

// Mode selects the builder a profile runs.
type Mode string

const (
	ModeDescendants      Mode = "descendants"
	ModeAncestors        Mode = "ancestors"
	ModeAncestorsBounded Mode = "ancestors-bounded"
	ModeClosure          Mode = "closure"
)

// Modes lists every supported mode.
var Modes = []string{
	string(ModeDescendants),
	string(ModeAncestors),
	string(ModeAncestorsBounded),
	string(ModeClosure),
}

// TreeMode reports whether m is a depth/filter bounded tree walk.
func (m Mode) TreeMode() bool {
	return m == ModeDescendants || m == ModeAncestors
}

// DelimitedMode reports whether m is bounded by a delimiter set.
func (m Mode) DelimitedMode() bool {
	return m == ModeAncestorsBounded || m == ModeClosure
}

// Profile is one build run read from YAML.
type Profile struct {
	Ontology    OntologySection   `yaml:"ontology"`
	Build       BuildSection      `yaml:"build"`
	Annotation  AnnotationSection `yaml:"annotation"`
	Output      OutputSection     `yaml:"output"`
	MetricsFile string            `yaml:"metrics_file"`
	LogLevel    string            `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

type OntologySection struct {
	Path          string   `yaml:"path" validate:"required"`
	Relationships []string `yaml:"relationships" validate:"dive,required"`
}

type BuildSection struct {
	Mode       Mode     `yaml:"mode" validate:"required,oneof=descendants ancestors ancestors-bounded closure"`
	Roots      []string `yaml:"roots" validate:"required,min=1,dive,termid"`
	MaxDepth   int      `yaml:"max_depth" validate:"min=0"`
	Delimiters []string `yaml:"delimiters" validate:"dive,termid"`
	Inclusive  bool     `yaml:"inclusive"`
	Exclude    []string `yaml:"exclude" validate:"dive,termid"`
	IDPattern  string   `yaml:"id_pattern"`
}

type AnnotationSection struct {
	CSV           string `yaml:"csv"`
	IndexColumn   bool   `yaml:"index_column"`
	Separator     string `yaml:"separator" validate:"omitempty,len=1"`
	JoinColumn    string `yaml:"join_column"`
	PostgresURL   string `yaml:"postgres_url"`
	PostgresTable string `yaml:"postgres_table"`
}

// Enabled reports whether the profile names an annotation source.
func (a AnnotationSection) Enabled() bool {
	return a.CSV != "" || a.PostgresURL != ""
}

// CSVOptions returns the loader options for the CSV source.
func (a AnnotationSection) CSVOptions() annotation.CSVOptions {
	opts := annotation.CSVOptions{IndexColumn: a.IndexColumn}
	if a.Separator != "" {
		opts.Comma = []rune(a.Separator)[0]
	}
	return opts
}

type OutputSection struct {
	Path    string `yaml:"path"`
	Format  string `yaml:"format" validate:"omitempty,oneof=graphml json"`
	Relabel bool   `yaml:"relabel"`
	Pretty  bool   `yaml:"pretty"`
}

// ExportOptions returns the writer options for the output section.
func (o OutputSection) ExportOptions() export.Options {
	return export.Options{Format: export.Format(o.Format), Pretty: o.Pretty}
}

// Load reads a profile file. Relative paths inside the profile are
// resolved against the profile's directory.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.resolvePaths(filepath.Dir(path))
	return p, nil
}

// Parse decodes a profile and fills in defaults. Unknown keys are errors.
// The result is not validated.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	p.ApplyDefaults()
	return &p, nil
}

// ApplyDefaults fills unset optional fields.
func (p *Profile) ApplyDefaults() {
	p.Annotation.JoinColumn = validation.DefaultOr(p.Annotation.JoinColumn, annotation.DefaultJoinColumn)
	p.LogLevel = validation.DefaultOr(p.LogLevel, "info")
	if p.Output.Format == "" && p.Output.Path != "" {
		p.Output.Format = string(export.FormatForPath(p.Output.Path))
	}
}

func (p *Profile) resolvePaths(dir string) {
	for _, path := range []*string{&p.Ontology.Path, &p.Annotation.CSV, &p.Output.Path, &p.MetricsFile} {
		if *path != "" && !filepath.IsAbs(*path) {
			*path = filepath.Join(dir, *path)
		}
	}
}

// Validate checks field constraints, then the rules that span fields.
func (p *Profile) Validate() error {
	if err := validation.ValidateStruct(p); err != nil {
		return err
	}

	b := p.Build
	cv := validation.NewConfigValidator("build")
	cv.When(b.Mode.DelimitedMode(), func(v *validation.ConfigValidator) {
		v.RequiredList("delimiters", b.Delimiters)
		v.Zero("max_depth", b.MaxDepth, "for "+string(b.Mode)+" builds")
		v.Custom("exclude", func() error {
			if len(b.Exclude) > 0 || b.IDPattern != "" {
				return fmt.Errorf("filters only apply to %s and %s builds", ModeDescendants, ModeAncestors)
			}
			return nil
		})
	})
	cv.When(b.Mode.TreeMode(), func(v *validation.ConfigValidator) {
		v.Custom("delimiters", func() error {
			if len(b.Delimiters) > 0 {
				return fmt.Errorf("delimiters only apply to %s and %s builds", ModeAncestorsBounded, ModeClosure)
			}
			return nil
		})
	})
	cv.When(b.Inclusive, func(v *validation.ConfigValidator) {
		v.Custom("inclusive", func() error {
			if b.Mode != ModeClosure {
				return fmt.Errorf("only applies to %s builds", ModeClosure)
			}
			return nil
		})
	})
	cv.Pattern("id_pattern", b.IDPattern)

	a := p.Annotation
	av := validation.NewConfigValidator("annotation")
	av.Exclusive(map[string]string{"csv": a.CSV, "postgres_url": a.PostgresURL})
	av.When(a.PostgresURL != "", func(v *validation.ConfigValidator) {
		v.Required("postgres_table", a.PostgresTable)
	})

	for _, v := range []*validation.ConfigValidator{cv, av} {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Filter returns the node filter of a tree build, or nil when the profile
// sets none.
func (p *Profile) Filter() (func(id string) bool, error) {
	if len(p.Build.Exclude) == 0 && p.Build.IDPattern == "" {
		return nil, nil
	}

	excluded := make(map[string]bool, len(p.Build.Exclude))
	for _, id := range p.Build.Exclude {
		excluded[id] = true
	}
	var pattern *regexp.Regexp
	if p.Build.IDPattern != "" {
		var err error
		if pattern, err = regexp.Compile(p.Build.IDPattern); err != nil {
			return nil, fmt.Errorf("build.id_pattern: %w", err)
		}
	}

	return func(id string) bool {
		if excluded[id] {
			return false
		}
		return pattern == nil || pattern.MatchString(id)
	}, nil
}
