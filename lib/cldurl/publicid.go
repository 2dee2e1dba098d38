package cldurl

import (
	"regexp"
)

var (
	// image/upload/v123/folder/id - an identifier with its addressing built in
	embeddedMetadata = regexp.MustCompile(`^(image|raw)/([a-z0-9_]+)/v(\d+)/(.+)$`)
	absoluteURL      = regexp.MustCompile(`(?i)^https?:/`)
	httpPrefix       = regexp.MustCompile(`^https?:/`)
	versionPrefix    = regexp.MustCompile(`^v[0-9]+`)
	doubleSlash      = regexp.MustCompile(`([^:])//`)
)

// embedded is the addressing found inside a public id
type embedded struct {
	resourceType string
	typ          string
	version      string
	publicID     string
}

// parseEmbedded splits a fully qualified public id such as
// "image/upload/v1234/sample" into its parts
func parseEmbedded(publicID string) (e embedded, ok bool) {
	m := embeddedMetadata.FindStringSubmatch(publicID)
	if m == nil {
		return e, false
	}
	return embedded{
		resourceType: m[1],
		typ:          m[2],
		version:      m[3],
		publicID:     m[4],
	}, true
}

// isAbsoluteURL returns true if s starts with http:/ or https:/ in
// any case
func isAbsoluteURL(s string) bool {
	return absoluteURL.MatchString(s)
}

// collapseSlashes turns // into / unless it follows a : so that any
// scheme:// is left alone
func collapseSlashes(s string) string {
	return doubleSlash.ReplaceAllString(s, "${1}/")
}
