package cldurl

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const upperhex = "0123456789ABCDEF"

// finalizeSource returns the public id as it appears in the URL and
// the form of it which would be signed.
func finalizeSource(source, format, urlSuffix string) (rendered, toSign string, err error) {
	source = collapseSlashes(source)
	if isAbsoluteURL(source) {
		source = smartEscape(source)
		return source, source, nil
	}
	source = encodePublicID(source)
	toSign = source
	if urlSuffix != "" {
		if strings.ContainsAny(urlSuffix, "./") {
			return "", "", errors.Wrapf(ErrInvalidURLSuffix, "%q", urlSuffix)
		}
		source += "/" + urlSuffix
	}
	if format != "" {
		source += "." + format
		toSign += "." + format
	}
	return source, toSign, nil
}

// isSmartSafe returns true if c can be left alone in a fetched URL
func isSmartSafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("_.-/:", c) >= 0
}

// smartEscape percent encodes every byte of s outside [a-zA-Z0-9_.\-/:]
func smartEscape(s string) string {
	return escape(s, isSmartSafe)
}

// isComponentSafe returns true for the bytes encodeURIComponent leaves
// alone, plus : and / which are kept readable in public ids
func isComponentSafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'():/", c) >= 0
}

// encodePublicID normalises the escaping of a public id by decoding
// any percent escapes already present then encoding it again.
//
// A public id with malformed escapes is encoded as given.
func encodePublicID(s string) string {
	decoded, err := url.PathUnescape(s)
	if err == nil && utf8.ValidString(decoded) {
		s = decoded
	}
	return escape(s, isComponentSafe)
}

// escape percent encodes the bytes of s for which safe returns false
func escape(s string, safe func(byte) bool) string {
	var out strings.Builder
	out.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if safe(c) {
			out.WriteByte(c)
			continue
		}
		out.WriteByte('%')
		out.WriteByte(upperhex[c>>4])
		out.WriteByte(upperhex[c&15])
	}
	return out.String()
}
