// Package pdf pulls a DOI out of a paper's PDF so it can be searched.
package pdf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/matsen/citegraph/internal/paper"
)

// MaxPages is how many leading pages are scanned; the DOI is almost always
// on the first page.
const MaxPages = 3

// ErrNoDOI is returned when no DOI appears in the scanned pages.
var ErrNoDOI = errors.New("no DOI found in PDF")

// DOI pattern: 10.XXXX/... where XXXX is 4-9 digits.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// ExtractDOI opens the PDF at filePath and returns the first DOI found.
func ExtractDOI(filePath string) (paper.Identifier, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", filePath, err)
	}
	return ExtractDOIReader(f, info.Size())
}

// ExtractDOIReader is ExtractDOI for an already open PDF.
func ExtractDOIReader(r io.ReaderAt, size int64) (paper.Identifier, error) {
	text, err := extractText(r, size, MaxPages)
	if err != nil {
		return "", err
	}
	doi := FindDOI(text)
	if doi == "" {
		return "", ErrNoDOI
	}
	return paper.Identifier(doi), nil
}

// extractText returns the plain text of the first maxPages pages.
// Pages that fail to decode are skipped.
func extractText(r io.ReaderAt, size int64, maxPages int) (string, error) {
	pdfReader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("reading PDF: %w", err)
	}

	if maxPages <= 0 || maxPages > pdfReader.NumPage() {
		maxPages = pdfReader.NumPage()
	}

	var builder strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

// FindDOI returns the first plausible DOI in text, or "".
func FindDOI(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		// Sentence punctuation often sticks to the end.
		match = strings.TrimRight(match, ".,;:)")
		if isValidDOI(match) {
			return match
		}
	}
	return ""
}

// isValidDOI performs basic validation on a DOI.
func isValidDOI(doi string) bool {
	if len(doi) < 10 {
		return false
	}
	if !strings.HasPrefix(doi, "10.") {
		return false
	}
	slashIdx := strings.Index(doi, "/")
	return slashIdx != -1 && slashIdx < len(doi)-1
}
