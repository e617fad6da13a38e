package pdf

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFindDOI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "Published as 10.1109/5.771073 in Proc.", "10.1109/5.771073"},
		{"doi url", "https://doi.org/10.1038/nature12373\nAbstract", "10.1038/nature12373"},
		{"trailing punctuation", "see (doi: 10.1101/2020.01.01.123456).", "10.1101/2020.01.01.123456"},
		{"first of several", "10.1000/first and 10.1000/second", "10.1000/first"},
		{"short registrant rejected", "10.12/abc", ""},
		{"nothing", "no identifiers here", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindDOI(tt.text); got != tt.want {
				t.Errorf("FindDOI(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsValidDOI(t *testing.T) {
	tests := []struct {
		doi  string
		want bool
	}{
		{"10.1109/5.771073", true},
		{"10.1234/x", false}, // too short
		{"11.1234/abcdef", false},
		{"10.123456789", false},
		{"10.123456/", false},
	}
	for _, tt := range tests {
		if got := isValidDOI(tt.doi); got != tt.want {
			t.Errorf("isValidDOI(%q) = %v, want %v", tt.doi, got, tt.want)
		}
	}
}

func TestExtractDOI_MissingFile(t *testing.T) {
	_, err := ExtractDOI(filepath.Join(t.TempDir(), "missing.pdf"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestExtractDOIReader_NotAPDF(t *testing.T) {
	data := "this is not a pdf"
	_, err := ExtractDOIReader(strings.NewReader(data), int64(len(data)))
	if err == nil {
		t.Fatal("expected error for non-PDF input")
	}
	if errors.Is(err, ErrNoDOI) {
		t.Error("parse failure should not be reported as ErrNoDOI")
	}
}
