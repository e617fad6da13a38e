// Package paper defines the canonical record produced by every bibliographic
// source, independent of which provider answered.
package paper

import "strings"

// Record is the canonical result of resolving an identifier.
type Record struct {
	// Identity, as assigned by the provider that produced the record.
	// Not necessarily equal to the identifier that was searched for.
	ID string `json:"id"`

	// Metadata
	Title   string   `json:"title"`
	Year    int      `json:"year,omitempty"` // 0 if unknown
	Authors []string `json:"authors,omitempty"`
	URL     string   `json:"url,omitempty"`

	// Citation graph
	References []Related `json:"references"` // works this paper cites
	Citations  []Related `json:"citations"`  // works that cite this paper

	// Source names the adapter that produced the record (s2, crossref).
	Source string `json:"source"`
}

// Related is a paper on the other end of a reference or citation.
// An empty ID means the entry cannot be linked and is dropped from graphs.
type Related struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Linkable reports whether the related paper carries an ID.
func (r Related) Linkable() bool {
	return r.ID != ""
}

// AuthorsString joins author names with ", ".
func (r *Record) AuthorsString() string {
	return strings.Join(r.Authors, ", ")
}

// LinkableReferences returns the references that carry an ID.
func (r *Record) LinkableReferences() []Related {
	return linkable(r.References)
}

// LinkableCitations returns the citations that carry an ID.
func (r *Record) LinkableCitations() []Related {
	return linkable(r.Citations)
}

func linkable(in []Related) []Related {
	out := make([]Related, 0, len(in))
	for _, rel := range in {
		if rel.Linkable() {
			out = append(out, rel)
		}
	}
	return out
}
