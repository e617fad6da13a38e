package crossref

import (
	"strings"

	"github.com/matsen/citegraph/internal/paper"
	"github.com/matsen/citegraph/internal/source"
)

// MapWork converts a Crossref work to the canonical record.
// References and citations are always empty: Crossref lookups do not
// traverse the citation graph. The record ID is Crossref's DOI for the work,
// falling back to the identifier that was looked up.
func MapWork(msg *Message, id paper.Identifier) (*paper.Record, error) {
	if msg == nil {
		return nil, source.Errorf(Name, source.Malformed, "empty response")
	}

	title := firstTitle(msg.Title)
	if title == "" {
		return nil, source.Errorf(Name, source.Malformed, "response has no title")
	}

	recID := msg.DOI
	if recID == "" {
		recID = id.String()
	}

	year := msg.Published.Year()
	if year == 0 {
		year = msg.Issued.Year()
	}

	return &paper.Record{
		ID:         recID,
		Title:      title,
		Year:       year,
		Authors:    mapAuthors(msg.Author),
		URL:        msg.URL,
		References: []paper.Related{},
		Citations:  []paper.Related{},
		Source:     Name,
	}, nil
}

// firstTitle returns the first non-blank title, collapsed to a single line.
func firstTitle(titles []string) string {
	for _, t := range titles {
		if t = strings.Join(strings.Fields(t), " "); t != "" {
			return t
		}
	}
	return ""
}

// mapAuthors uses family names, falling back to the organisation name.
func mapAuthors(authors []Author) []string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		name := strings.TrimSpace(a.Family)
		if name == "" {
			name = strings.TrimSpace(a.Name)
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
