// Package subconverter models registered instances of the external
// link-to-config conversion service.
package subconverter

import "strings"

// Subconverter is one conversion service endpoint plus the extra query
// options sent with every conversion request.
type Subconverter struct {
	id        string
	url       string
	options   string
	isDefault bool
}

func ReconstructSubconverter(id, url, options string, isDefault bool) *Subconverter {
	return &Subconverter{
		id:        id,
		url:       url,
		options:   options,
		isDefault: isDefault,
	}
}

func (s *Subconverter) ID() string { return s.id }

// URL returns the base URL as stored.
func (s *Subconverter) URL() string { return s.url }

// BaseURL returns the URL without surrounding whitespace or trailing slashes.
func (s *Subconverter) BaseURL() string {
	return NormalizeBaseURL(s.url)
}

// Options returns the raw query fragment as stored.
func (s *Subconverter) Options() string { return s.options }

// QueryOptions returns the query fragment without a leading "?" or "&".
func (s *Subconverter) QueryOptions() string {
	return strings.TrimLeft(strings.TrimSpace(s.options), "?&")
}

func (s *Subconverter) IsDefault() bool { return s.isDefault }

// NormalizeBaseURL trims whitespace and trailing slashes from a service URL.
func NormalizeBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}
