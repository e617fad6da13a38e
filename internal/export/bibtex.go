// Package export renders resolved records in citation formats.
package export

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/matsen/citegraph/internal/paper"
)

// ToBibTeX converts a resolved record to a BibTeX entry. doi is the
// identifier that was searched for; the record's own ID may be a provider key.
func ToBibTeX(rec *paper.Record, doi paper.Identifier) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@article{%s,\n", CitationKey(rec)))

	if len(rec.Authors) > 0 {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", formatAuthors(rec.Authors)))
	}

	b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(rec.Title)))

	if rec.Year > 0 {
		b.WriteString(fmt.Sprintf("  year = {%d},\n", rec.Year))
	}

	if doi != "" {
		b.WriteString(fmt.Sprintf("  doi = {%s},\n", doi))
	}

	if rec.URL != "" {
		b.WriteString(fmt.Sprintf("  url = {%s},\n", rec.URL))
	}

	b.WriteString("}\n")

	return b.String()
}

// CitationKey builds a key like "Smith2001" from the first author's last
// name and the year. Falls back to "paper" when there is no author.
func CitationKey(rec *paper.Record) string {
	key := "paper"
	if len(rec.Authors) > 0 {
		fields := strings.Fields(rec.Authors[0])
		if len(fields) > 0 {
			if last := keepLetters(fields[len(fields)-1]); last != "" {
				key = last
			}
		}
	}
	if rec.Year > 0 {
		key += fmt.Sprintf("%d", rec.Year)
	}
	return key
}

func keepLetters(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, s)
}

// formatAuthors joins display names in BibTeX style: "A and B and C".
func formatAuthors(authors []string) string {
	formatted := make([]string, len(authors))
	for i, a := range authors {
		formatted[i] = escapeLatex(a)
	}
	return strings.Join(formatted, " and ")
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	// Order matters: & must be first (before other escapes that might produce &)
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
