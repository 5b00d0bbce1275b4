package id

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/segmentio/fasthash/fnv1a"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// newsNamespace scopes UUIDv5 article ids to this service.
var newsNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://goalquest.app/news"))

// Hash folds the normalized parts into a short, stable base36 token.
func Hash(parts ...string) string {
	h := fnv1a.Init64
	for i, part := range parts {
		if i > 0 {
			h = fnv1a.AddString64(h, "\x1f")
		}
		h = fnv1a.AddString64(h, strings.ToLower(strings.TrimSpace(part)))
	}
	return strconv.FormatUint(h, 36)
}

// Slug lower-cases s and collapses every run of non-alphanumerics into one dash.
func Slug(s string) string {
	out := nonSlugChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	return strings.Trim(out, "-")
}

// Derived builds `<slug>-<hash>` from a display title and the fields that make
// it unique within one provider.
func Derived(provider, title string, extra ...string) string {
	parts := append([]string{provider, title}, extra...)
	slug := Slug(title)
	if slug == "" {
		return Hash(parts...)
	}
	return slug + "-" + Hash(parts...)
}

// FromURL derives a UUIDv5 from a canonical URL.
func FromURL(rawURL string) string {
	return uuid.NewSHA1(newsNamespace, []byte(strings.TrimSpace(rawURL))).String()
}
