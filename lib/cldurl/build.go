// Package cldurl builds Cloudinary delivery URLs from a public id and
// a set of options.
//
// Building is a pure string transformation: nothing is fetched, signed
// or cached.
package cldurl

import (
	"strings"

	"github.com/cldimg/cldimg/fs"
	"github.com/pkg/errors"
)

// Errors returned by Build. They are wrapped with the offending values
// so use errors.Is or errors.Cause to match them.
var (
	ErrURLSuffixNotSupported = errors.New("url suffix only supported for image/upload, image/private, image/authenticated")
	ErrRootPathNotSupported  = errors.New("root path only supported for image/upload")
	ErrInvalidURLSuffix      = errors.New("url suffix should not include . or /")
)

// Result is a URL made by Resolve along with the asset it addresses
type Result struct {
	URL string
	// Delivered is false when no CDN URL was made: an explicit Src,
	// an empty public id or an absolute URL passed through.
	Delivered bool
	// ResourceType and Type are the resource and delivery type the
	// URL addresses, after any embedded in the public id are applied
	// and before the url suffix, root path and shorten rewrites.
	ResourceType string
	Type         string
}

// Build returns the delivery URL for publicID.
//
// If opt.Src is set it is returned with any w_auto and h_auto tokens
// replaced by the requested width and height and nothing else is
// looked at.  An empty publicID returns an empty URL.  An absolute
// http(s) publicID with no delivery type is returned unchanged.
//
// opt is taken by value and never modified.
func Build(publicID string, opt Options) (string, error) {
	result, err := Resolve(publicID, opt)
	return result.URL, err
}

// Resolve is Build returning what the URL addresses too.
func Resolve(publicID string, opt Options) (Result, error) {
	if opt.Src != "" {
		return Result{URL: expandSrc(opt)}, nil
	}
	if publicID == "" {
		return Result{}, nil
	}

	// Fetched sources get their format as a transformation rather
	// than as an extension
	if opt.Type == "fetch" && opt.FetchFormat == "" {
		opt.FetchFormat = opt.Format
		opt.Format = ""
	}

	var (
		typ          = opt.Type
		resourceType = opt.ResourceType
		version      = opt.Version
	)
	if resourceType == "" {
		resourceType = "image"
	}
	transformation := transformationString(opt)

	if embedded, ok := parseEmbedded(publicID); ok {
		resourceType = embedded.resourceType
		typ = embedded.typ
		version = embedded.version
		publicID = embedded.publicID
	}

	if typ == "" && isAbsoluteURL(publicID) {
		fs.Debugf(publicID, "Absolute URL without delivery type - passing through")
		return Result{URL: publicID}, nil
	}

	result := Result{Delivered: true, ResourceType: resourceType, Type: typ}
	if result.Type == "" {
		result.Type = "upload"
	}

	resourceType, typ, err := finalizeResourceType(resourceType, typ, opt.URLSuffix, opt.UseRootPath.IsTrue(), opt.Shorten.IsTrue())
	if err != nil {
		return Result{}, err
	}

	source, sourceToSign, err := finalizeSource(publicID, opt.Format, opt.URLSuffix)
	if err != nil {
		return Result{}, err
	}

	if version == "" && needsVersion(sourceToSign) {
		version = "1"
	}
	if version != "" {
		version = "v" + version
	}

	transformation = collapseSlashes(transformation)

	prefix := unsignedURLPrefix(prefixOptions{
		cloudName:          opt.CloudName,
		privateCdn:         opt.PrivateCdn.IsTrue(),
		cname:              opt.Cname,
		secure:             opt.Secure.Or(true),
		secureDistribution: opt.SecureDistribution,
	})

	result.URL = joinSegments(prefix, resourceType, typ, transformation, version, source)
	return result, nil
}

// expandSrc fills in the auto width and height of an explicit source
func expandSrc(opt Options) string {
	src := opt.Src
	if opt.Width != "" {
		src = strings.Replace(src, "w_auto", "w_"+opt.Width, 1)
	}
	if opt.Height != "" {
		src = strings.Replace(src, "h_auto", "h_"+opt.Height, 1)
	}
	return src
}

// needsVersion returns true if a source in a folder should get the
// default version so the CDN can tell the folder from a
// transformation.
func needsVersion(sourceToSign string) bool {
	return strings.Index(sourceToSign, "/") > 0 &&
		!versionPrefix.MatchString(sourceToSign) &&
		!httpPrefix.MatchString(sourceToSign)
}

// joinSegments joins the non empty segments with /
func joinSegments(segments ...string) string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment != "" {
			out = append(out, segment)
		}
	}
	return strings.Join(out, "/")
}
