package cldurl

import (
	"strings"
)

// Hosts of the shared CDN
const (
	oldAkamaiSharedCDN = "cloudinary-a.akamaihd.net"
	akamaiSharedCDN    = "res.cloudinary.com"
	sharedCDN          = akamaiSharedCDN
)

// prefixOptions are the options which select the scheme and host
type prefixOptions struct {
	cloudName          string
	privateCdn         bool
	cname              string
	secure             bool
	secureDistribution string
}

// unsignedURLPrefix returns the scheme and host of the URL, followed
// by the cloud name when the host is shared between clouds.
func unsignedURLPrefix(opt prefixOptions) string {
	// local override such as /test for a relative URL
	if strings.HasPrefix(opt.cloudName, "/") {
		return "/res" + opt.cloudName
	}
	sharedDomain := !opt.privateCdn

	var prefix string
	switch {
	case opt.secure:
		secureDistribution := opt.secureDistribution
		if secureDistribution == "" || secureDistribution == oldAkamaiSharedCDN {
			if opt.privateCdn {
				secureDistribution = opt.cloudName + "-res.cloudinary.com"
			} else {
				secureDistribution = sharedCDN
			}
		}
		prefix = "https://" + secureDistribution
	case opt.cname != "":
		prefix = "http://" + opt.cname
	default:
		host := "res.cloudinary.com"
		if opt.privateCdn {
			host = opt.cloudName + "-" + host
		}
		prefix = "http://" + host
	}
	if sharedDomain && opt.cloudName != "" {
		prefix += "/" + opt.cloudName
	}
	return prefix
}
