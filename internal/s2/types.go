// Package s2 provides the rich bibliographic source: a client for the
// Semantic Scholar Academic Graph API that returns a paper together with its
// references and citations.
package s2

// Paper is the subset of the S2 paper object requested by the client.
type Paper struct {
	PaperID    string    `json:"paperId"`
	Title      string    `json:"title"`
	Year       int       `json:"year,omitempty"`
	Authors    []Author  `json:"authors,omitempty"`
	URL        string    `json:"url,omitempty"`
	References []Related `json:"references,omitempty"`
	Citations  []Related `json:"citations,omitempty"`
}

// Author represents an author from the Semantic Scholar API.
type Author struct {
	AuthorID string `json:"authorId,omitempty"`
	Name     string `json:"name"`
}

// Related is an entry of a paper's references or citations list.
// PaperID is null for works S2 could not match to a record.
type Related struct {
	PaperID string `json:"paperId"`
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
}

// errorBody is the JSON body S2 returns alongside error statuses.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (b errorBody) text() string {
	if b.Error != "" {
		return b.Error
	}
	return b.Message
}
