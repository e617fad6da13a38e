package s2

import (
	"strings"

	"github.com/matsen/citegraph/internal/paper"
	"github.com/matsen/citegraph/internal/source"
)

// MapPaper converts an S2 paper to the canonical record.
// A missing title is Malformed. If S2 omits the paperId, the DOI that was
// looked up stands in as the record ID.
func MapPaper(p *Paper, id paper.Identifier) (*paper.Record, error) {
	if p == nil {
		return nil, source.Errorf(Name, source.Malformed, "empty response")
	}

	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, source.Errorf(Name, source.Malformed, "response has no title")
	}

	recID := p.PaperID
	if recID == "" {
		recID = "DOI:" + id.String()
	}

	return &paper.Record{
		ID:         recID,
		Title:      title,
		Year:       p.Year,
		Authors:    mapAuthors(p.Authors),
		URL:        p.URL,
		References: mapRelated(p.References),
		Citations:  mapRelated(p.Citations),
		Source:     Name,
	}, nil
}

// mapAuthors keeps author names in order, dropping blanks.
func mapAuthors(authors []Author) []string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// mapRelated keeps entries in provider order, including unlinkable ones;
// dropping those is the graph builder's concern.
func mapRelated(in []Related) []paper.Related {
	out := make([]paper.Related, 0, len(in))
	for _, r := range in {
		out = append(out, paper.Related{
			ID:    r.PaperID,
			Title: strings.TrimSpace(r.Title),
			URL:   r.URL,
		})
	}
	return out
}
