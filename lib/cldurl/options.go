package cldurl

import (
	"github.com/cldimg/cldimg/fs"
	"github.com/cldimg/cldimg/fs/config/configmap"
	"github.com/cldimg/cldimg/fs/config/configstruct"
)

// Options is everything which can go into a delivery URL.
//
// An empty string or an unset Tristate means the option wasn't given.
// Numeric values are carried as the strings which should appear in
// the URL.
type Options struct {
	// Src is used verbatim (after w_auto/h_auto expansion) if set
	Src string `config:"src"`

	// Host selection
	CloudName          string      `config:"cloud_name"`
	Secure             fs.Tristate `config:"secure"` // defaults to true
	Cname              string      `config:"cname"`
	CdnSubdomain       fs.Tristate `config:"cdn_subdomain"`
	SecureCdnSubdomain fs.Tristate `config:"secure_cdn_subdomain"`
	SecureDistribution string      `config:"secure_distribution"`
	PrivateCdn         fs.Tristate `config:"private_cdn"`
	Shorten            fs.Tristate `config:"shorten"`

	// Resource addressing
	Type         string      `config:"type"`          // delivery type, defaults to upload
	ResourceType string      `config:"resource_type"` // defaults to image
	Version      string      `config:"version"`
	URLSuffix    string      `config:"url_suffix"`
	UseRootPath  fs.Tristate `config:"use_root_path"`
	Format       string      `config:"format"`

	// Transformation
	Width                string `config:"width"`
	Height               string `config:"height"`
	TransformationWidth  string `config:"transformation_width"`
	TransformationHeight string `config:"transformation_height"`
	Crop                 string `config:"crop"`
	Gravity              string `config:"gravity"`
	Background           string `config:"background"`
	Effect               string `config:"effect"`
	Border               string `config:"border"`
	AspectRatio          string `config:"aspect_ratio"`
	DPR                  string `config:"dpr"`
	Quality              string `config:"quality"`
	FetchFormat          string `config:"fetch_format"`
	RawTransformation    string `config:"raw_transformation"`
}

// OptionsFromMap reads Options from the config map passed in.
//
// Keys are the snake_case names in the config tags above.
func OptionsFromMap(m configmap.Getter) (opt Options, err error) {
	err = configstruct.Set(m, &opt)
	return opt, err
}
