package ontology

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/mmap"
)

// ParseOptions configures how OBO stanzas become hierarchy edges.
type ParseOptions struct {
	// Relationships lists relationship types (e.g. "part_of") that are
	// treated as parent edges in addition to is_a.
	Relationships []string
}

const maxLineSize = 4 * 1024 * 1024

// Parse reads an OBO document. Only [Term] stanzas become terms; other
// stanza types are skipped.
func Parse(r io.Reader, opts ParseOptions) (*Ontology, error) {
	relationships := make(map[string]bool, len(opts.Relationships))
	for _, rel := range opts.Relationships {
		relationships[rel] = true
	}

	o := New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var (
		stanza  string // "" while in the header
		current *Term
		lineNo  int
		pending string
	)

	flush := func(line int) error {
		if current == nil {
			return nil
		}
		if current.ID == "" {
			return &ParseError{Line: line, Msg: "term stanza without id"}
		}
		o.AddTerm(current)
		for _, p := range termParents(current, relationships) {
			o.AddParent(current.ID, p)
		}
		current = nil
		return nil
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// Trailing backslash continues the tag on the next line.
		if strings.HasSuffix(line, `\`) && !strings.HasSuffix(line, `\\`) {
			pending += strings.TrimSuffix(line, `\`)
			continue
		}
		if pending != "" {
			line = pending + line
			pending = ""
		}

		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("bad stanza header %q", line)}
			}
			if err := flush(lineNo); err != nil {
				return nil, err
			}
			stanza = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			if stanza == "Term" {
				current = &Term{}
			}
			continue
		}

		tag, err := parseTagLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Msg: err.Error()}
		}

		switch {
		case stanza == "":
			o.Header = append(o.Header, tag)
			continue
		case current == nil:
			continue
		}

		current.Tags = append(current.Tags, tag)
		switch tag.Name {
		case "id":
			current.ID = tag.Value
		case "name":
			current.Name = tag.Value
		case "is_a":
			if firstField(tag.Value) == "" {
				return nil, &ParseError{Line: lineNo, Msg: "is_a without target"}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBO document: %w", err)
	}
	if err := flush(lineNo); err != nil {
		return nil, err
	}

	return o, nil
}

// LoadFile memory-maps an OBO file and parses it.
func LoadFile(path string, opts ParseOptions) (*Ontology, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ontology %s: %w", path, err)
	}
	defer reader.Close()

	o, err := Parse(io.NewSectionReader(reader, 0, int64(reader.Len())), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ontology %s: %w", path, err)
	}
	return o, nil
}

// termParents returns the is_a targets of a term followed by the targets
// of its followed relationship types, in tag order.
func termParents(t *Term, relationships map[string]bool) []string {
	var parents []string
	for _, v := range t.TagValues("is_a") {
		parents = append(parents, firstField(v))
	}
	for _, v := range t.TagValues("relationship") {
		fields := strings.Fields(v)
		if len(fields) >= 2 && relationships[fields[0]] {
			parents = append(parents, fields[1])
		}
	}
	return parents
}

// parseTagLine splits "name: value {modifiers} ! comment".
func parseTagLine(line string) (Tag, error) {
	name, rest, ok := strings.Cut(line, ":")
	if !ok || strings.TrimSpace(name) == "" {
		return Tag{}, fmt.Errorf("expected tag, got %q", line)
	}

	tag := Tag{Name: strings.TrimSpace(name)}
	value := strings.TrimSpace(rest)

	if i := unescapedIndex(value, '!'); i >= 0 {
		tag.Comment = strings.TrimSpace(value[i+1:])
		value = strings.TrimSpace(value[:i])
	}
	if strings.HasSuffix(value, "}") {
		if i := unescapedIndex(value, '{'); i >= 0 && !inQuotes(value, i) {
			tag.Modifiers = strings.TrimSpace(value[i+1 : len(value)-1])
			value = strings.TrimSpace(value[:i])
		}
	}

	tag.Value = value
	return tag, nil
}

// unescapedIndex returns the index of the first c that is neither
// backslash-escaped nor inside a quoted string.
func unescapedIndex(s string, c byte) int {
	quoted := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			quoted = !quoted
		case c:
			if !quoted {
				return i
			}
		}
	}
	return -1
}

func inQuotes(s string, pos int) bool {
	quoted := false
	for i := 0; i < pos; i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			quoted = !quoted
		}
	}
	return quoted
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
