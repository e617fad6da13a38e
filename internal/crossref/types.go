// Package crossref provides the minimal bibliographic source: a client for
// the Crossref REST API that returns metadata only, without the citation
// graph.
package crossref

// envelope is the top-level Crossref response.
type envelope struct {
	Status  string   `json:"status"`
	Message *Message `json:"message"`
}

// Message is the work record inside the Crossref envelope.
type Message struct {
	DOI       string   `json:"DOI"`
	URL       string   `json:"URL"`
	Title     []string `json:"title"`
	Author    []Author `json:"author"`
	Published *Date    `json:"published"`
	Issued    *Date    `json:"issued"`
}

// Author is a Crossref contributor. Organisations carry Name instead of
// Given/Family.
type Author struct {
	Given  string `json:"given,omitempty"`
	Family string `json:"family,omitempty"`
	Name   string `json:"name,omitempty"`
}

// Date is a Crossref partial date. DateParts holds [[year, month, day]] with
// trailing parts optional; year can be null for undated works.
type Date struct {
	DateParts [][]*int `json:"date-parts"`
}

// Year returns the first element of the first date-parts array, or 0.
func (d *Date) Year() int {
	if d == nil || len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return 0
	}
	if y := d.DateParts[0][0]; y != nil {
		return *y
	}
	return 0
}
