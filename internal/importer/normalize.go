package importer

import "strings"

// MaxDomainLength caps stored domain strings. Domains are limited to 253
// chars per RFC; allow a small buffer and truncate rather than reject.
const MaxDomainLength = 255

// NormalizeDomain canonicalizes a raw domain string for storage: trim,
// lowercase, drop protocol fragments, strip surrounding slashes, truncate to
// the storage cap. An empty result means the input carried no usable domain
// and the caller must skip it.
func NormalizeDomain(raw string) string {
	d := strings.ToLower(strings.TrimSpace(raw))
	// some dataset variants embed a protocol inside the domain field
	d = strings.ReplaceAll(d, "http://", "")
	d = strings.ReplaceAll(d, "https://", "")
	d = strings.Trim(d, "/")
	if len(d) > MaxDomainLength {
		d = d[:MaxDomainLength]
	}
	return d
}

// NormalizeWebsite trims a raw website URL. Empty or absent input yields nil
// so an empty string is never stored.
func NormalizeWebsite(raw *string) *string {
	if raw == nil {
		return nil
	}
	url := strings.TrimSpace(*raw)
	if url == "" {
		return nil
	}
	return &url
}
