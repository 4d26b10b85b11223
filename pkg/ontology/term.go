package ontology

import "regexp"

// Tag is a single "name: value" line of an OBO stanza, kept in file order.
type Tag struct {
	Name      string
	Value     string
	Modifiers string // raw "{...}" trailing modifiers, without braces
	Comment   string // trailing "! ..." comment, without the marker
}

// Term is a node of the hierarchy
type Term struct {
	ID   string
	Name string
	Tags []Tag
}

// HasTag checks if the term carries a tag with the given name and value,
// e.g. HasTag("is_a", "FF:0000004").
func (t *Term) HasTag(name, value string) bool {
	for _, tag := range t.Tags {
		if tag.Name == name && tag.Value == value {
			return true
		}
	}
	return false
}

// TagValues returns the values of all tags with the given name, in order.
func (t *Term) TagValues(name string) []string {
	var values []string
	for _, tag := range t.Tags {
		if tag.Name == name {
			values = append(values, tag.Value)
		}
	}
	return values
}

// Clone creates a deep copy of a term
func (t *Term) Clone() *Term {
	clone := &Term{ID: t.ID, Name: t.Name, Tags: make([]Tag, len(t.Tags))}
	copy(clone.Tags, t.Tags)
	return clone
}

var sampleIDPattern = regexp.MustCompile(`^FF:.{5}-.{5}`)

// IsSampleID reports whether id names a sample (a leaf such as
// "FF:13541-145H4") rather than an annotation term.
func IsSampleID(id string) bool {
	return sampleIDPattern.MatchString(id)
}
