package cldurl

import (
	"github.com/pkg/errors"
)

// suffixResourceTypes maps image delivery types onto the resource type
// used for SEO suffixed URLs
var suffixResourceTypes = map[string]string{
	"upload":        "images",
	"private":       "private_images",
	"authenticated": "authenticated_images",
}

// finalizeResourceType works out the resource type and delivery type
// path segments.  An empty return means the segment is left out.
func finalizeResourceType(resourceType, typ, urlSuffix string, useRootPath, shorten bool) (string, string, error) {
	if typ == "" {
		typ = "upload"
	}
	if urlSuffix != "" {
		suffixed, ok := suffixResourceTypes[typ]
		if resourceType != "image" || !ok {
			return "", "", errors.Wrapf(ErrURLSuffixNotSupported, "%s/%s", resourceType, typ)
		}
		resourceType, typ = suffixed, ""
	}
	if useRootPath {
		if !(resourceType == "image" && typ == "upload") && !(resourceType == "images" && typ == "") {
			return "", "", errors.Wrapf(ErrRootPathNotSupported, "%s/%s", resourceType, typ)
		}
		resourceType, typ = "", ""
	}
	if shorten && resourceType == "image" && typ == "upload" {
		resourceType, typ = "iu", ""
	}
	return resourceType, typ, nil
}
