package ontology

// Ontology is an in-memory term hierarchy. Parent edges point from a term
// to the more general terms it specializes (is_a, plus any relationship
// types enabled at load time).
//
// An Ontology is read-only once loaded and may be queried concurrently.
type Ontology struct {
	Header []Tag

	terms    map[string]*Term
	order    []string
	parents  map[string][]string
	children map[string][]string
}

// New creates an empty ontology
func New() *Ontology {
	return &Ontology{
		terms:    make(map[string]*Term),
		parents:  make(map[string][]string),
		children: make(map[string][]string),
	}
}

// AddTerm registers a copy of term. Adding an ID twice merges the tags of
// the second term into the first.
func (o *Ontology) AddTerm(term *Term) {
	if existing, ok := o.terms[term.ID]; ok {
		existing.Tags = append(existing.Tags, term.Tags...)
		if existing.Name == "" {
			existing.Name = term.Name
		}
		return
	}
	o.terms[term.ID] = term.Clone()
	o.order = append(o.order, term.ID)
}

// AddParent records that parent is a direct parent of child. The parent
// does not need to be registered yet; unresolved parents surface as
// ErrTermNotFound when queried.
func (o *Ontology) AddParent(child, parent string) {
	for _, p := range o.parents[child] {
		if p == parent {
			return
		}
	}
	o.parents[child] = append(o.parents[child], parent)
	o.children[parent] = append(o.children[parent], child)
}

// Len returns the number of terms
func (o *Ontology) Len() int {
	return len(o.terms)
}

// IDs returns all term IDs in load order.
func (o *Ontology) IDs() []string {
	ids := make([]string, len(o.order))
	copy(ids, o.order)
	return ids
}

// Term looks up a term by ID.
func (o *Ontology) Term(id string) (*Term, error) {
	term, ok := o.terms[id]
	if !ok {
		return nil, TermNotFoundError("term", id)
	}
	return term, nil
}

// ChildTerms returns the direct children of id.
func (o *Ontology) ChildTerms(id string) ([]*Term, error) {
	if _, ok := o.terms[id]; !ok {
		return nil, TermNotFoundError("children of", id)
	}
	return o.resolve("children of", o.children[id])
}

// ParentTerms returns the direct parents of id.
func (o *Ontology) ParentTerms(id string) ([]*Term, error) {
	if _, ok := o.terms[id]; !ok {
		return nil, TermNotFoundError("parents of", id)
	}
	return o.resolve("parents of", o.parents[id])
}

// AncestorTerms returns every term reachable through parent edges from
// id, nearest first. id itself is never included, even on a cyclic
// hierarchy.
func (o *Ontology) AncestorTerms(id string) ([]*Term, error) {
	if _, ok := o.terms[id]; !ok {
		return nil, TermNotFoundError("ancestors of", id)
	}

	visited := map[string]bool{id: true}
	queue := append([]string(nil), o.parents[id]...)
	ancestors := make([]*Term, 0, len(queue))

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true

		term, ok := o.terms[current]
		if !ok {
			return nil, TermNotFoundError("ancestors of "+id+": parent", current)
		}
		ancestors = append(ancestors, term)
		queue = append(queue, o.parents[current]...)
	}

	return ancestors, nil
}

// Dangling returns parent references that do not resolve to a term,
// keyed by the referencing child.
func (o *Ontology) Dangling() map[string][]string {
	dangling := make(map[string][]string)
	for _, child := range o.order {
		for _, parent := range o.parents[child] {
			if _, ok := o.terms[parent]; !ok {
				dangling[child] = append(dangling[child], parent)
			}
		}
	}
	return dangling
}

func (o *Ontology) resolve(op string, ids []string) ([]*Term, error) {
	terms := make([]*Term, 0, len(ids))
	for _, id := range ids {
		term, ok := o.terms[id]
		if !ok {
			return nil, TermNotFoundError(op, id)
		}
		terms = append(terms, term)
	}
	return terms, nil
}
