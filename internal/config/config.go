// Package config handles the global citegraph configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/matsen/citegraph/internal/crossref"
	"github.com/matsen/citegraph/internal/resolve"
	"github.com/matsen/citegraph/internal/s2"
)

// Config represents configuration stored in ~/.config/citegraph/config.yml.
type Config struct {
	S2APIKey        string        `yaml:"s2_api_key,omitempty" json:"s2_api_key,omitempty"`
	S2BaseURL       string        `yaml:"s2_base_url,omitempty" json:"s2_base_url" validate:"required,url"`
	CrossrefBaseURL string        `yaml:"crossref_base_url,omitempty" json:"crossref_base_url" validate:"required,url"`
	CrossrefMailto  string        `yaml:"crossref_mailto,omitempty" json:"crossref_mailto,omitempty" validate:"omitempty,email"`
	Timeout         time.Duration `yaml:"timeout,omitempty" json:"timeout" validate:"gt=0"`
	RateLimit       float64       `yaml:"rate_limit,omitempty" json:"rate_limit,omitempty" validate:"gte=0"` // 0 keeps each provider's default
	ServeAddr       string        `yaml:"serve_addr,omitempty" json:"serve_addr" validate:"required,hostname_port"`
	Layout          string        `yaml:"layout,omitempty" json:"layout" validate:"oneof=force circle grid breadthfirst"`
}

// DefaultServeAddr is where `cg serve` listens unless configured otherwise.
const DefaultServeAddr = "localhost:8080"

// ValidLayouts lists the supported layout values.
var ValidLayouts = []string{"force", "circle", "grid", "breadthfirst"}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		S2BaseURL:       s2.BaseURL,
		CrossrefBaseURL: crossref.BaseURL,
		Timeout:         resolve.DefaultTimeout,
		ServeAddr:       DefaultServeAddr,
		Layout:          "force",
	}
}

var validate = validator.New()

// Validate checks field formats and ranges.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, e := range verrs {
				msgs[i] = formatFieldError(e)
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// formatFieldError names the offending yaml key rather than the Go field.
func formatFieldError(e validator.FieldError) string {
	field := yamlKey(e.StructField())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "gt", "gte":
		return fmt.Sprintf("%s must be positive", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "hostname_port":
		return fmt.Sprintf("%s must be host:port", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

var yamlKeys = map[string]string{
	"S2APIKey":        "s2_api_key",
	"S2BaseURL":       "s2_base_url",
	"CrossrefBaseURL": "crossref_base_url",
	"CrossrefMailto":  "crossref_mailto",
	"Timeout":         "timeout",
	"RateLimit":       "rate_limit",
	"ServeAddr":       "serve_addr",
	"Layout":          "layout",
}

func yamlKey(field string) string {
	if k, ok := yamlKeys[field]; ok {
		return k
	}
	return strings.ToLower(field)
}
