// Package element turns the attributes of an amp-cld-img element and
// the page wide configuration into a sized Cloudinary image.
package element

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/cldimg/cldimg/fs"
	"github.com/cldimg/cldimg/fs/config/configmap"
	"github.com/cldimg/cldimg/lib/cldurl"
	"github.com/pkg/errors"
)

// DefaultCrop is used when neither the element nor the page set one
const DefaultCrop = "fill"

// Attributes are the attributes of an element keyed by their HTML name
type Attributes map[string]string

// Get the attribute value
func (a Attributes) Get(key string) (value string, ok bool) {
	value, ok = a[key]
	return value, ok
}

// Image is what an element resolves to
type Image struct {
	PublicID  string
	Src       string
	Width     int
	Height    int
	Layout    string
	ObjectFit string // amp-object-fit-* class or ""
	Alt       string
}

// booleanOptions are normalised through cldurl.GetAsBoolean before
// being parsed
var booleanOptions = map[string]struct{}{
	"secure":               {},
	"cdn_subdomain":        {},
	"secure_cdn_subdomain": {},
	"private_cdn":          {},
	"shorten":              {},
	"use_root_path":        {},
}

// booleans is a Getter which reads the HTML spellings of true.
//
// It only wraps the attributes and the page config: options from the
// config file or the environment are parsed like everywhere else.
type booleans struct {
	configmap.Getter
}

// Get the value
func (b booleans) Get(key string) (value string, ok bool) {
	value, ok = b.Getter.Get(key)
	if !ok {
		return value, ok
	}
	if _, isBool := booleanOptions[key]; isBool {
		value = strconv.FormatBool(cldurl.GetAsBoolean(value))
	}
	return value, ok
}

// ParseConfig reads the JSON page configuration, eg
//
//	{ "cloudName": "demo", "privateCdn": true }
//
// into a map keyed by the camelCase names.
func ParseConfig(in io.Reader) (configmap.Simple, error) {
	var raw map[string]interface{}
	dec := json.NewDecoder(in)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "failed to parse page config")
	}
	config := configmap.Simple{}
	for k, v := range raw {
		switch x := v.(type) {
		case nil:
		case string:
			config[k] = x
		case json.Number:
			config[k] = x.String()
		case bool:
			config[k] = strconv.FormatBool(x)
		default:
			fs.Debugf(nil, "Ignoring page config %q of type %T", k, v)
		}
	}
	return config, nil
}

// PageConfig reads the options of a page config parsed by
// ParseConfig, with the same boolean spellings as the attributes.
func PageConfig(config configmap.Simple) configmap.Getter {
	return booleans{configmap.Camel(config)}
}

// optionsMap layers the element attributes over the defaults
func optionsMap(attrs Attributes, defaults configmap.Getter) *configmap.Map {
	m := configmap.New()
	m.AddGetter(booleans{configmap.Kebab(attrs)})
	if defaults != nil {
		m.AddGetter(defaults)
	}
	return m
}

// getInt reads a whole number from m returning 0 if it isn't set
func getInt(m configmap.Getter, key string) (int, error) {
	value, ok := m.Get(key)
	if !ok || value == "" {
		return 0, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Wrapf(err, "bad %s %q", configmap.SnakeToKebab(key), value)
	}
	if i < 0 {
		return 0, errors.Errorf("bad %s %q: must be positive", configmap.SnakeToKebab(key), value)
	}
	return i, nil
}

// Size works out the width and height to ask the CDN for.
//
// The width is rounded up to a multiple of stepSize then capped at
// maxSize. The height follows to keep the aspect ratio. A zero
// stepSize or maxSize is ignored.
func Size(width, height, stepSize, maxSize int) (int, int) {
	if width <= 0 {
		return width, height
	}
	w := width
	if stepSize > 0 {
		w = (w + stepSize - 1) / stepSize * stepSize
	}
	if maxSize > 0 && w > maxSize {
		w = maxSize
	}
	if height <= 0 || w == width {
		return w, height
	}
	h := (height*w + width/2) / width
	return w, h
}

// New resolves the element with attributes attrs.
//
// defaults, which may be nil, supplies the options the element doesn't
// set keyed by snake_case name.  Use PageConfig to read a page config.
func New(attrs Attributes, defaults configmap.Getter) (*Image, error) {
	m := optionsMap(attrs, defaults)
	opt, err := cldurl.OptionsFromMap(m)
	if err != nil {
		return nil, errors.Wrap(err, "bad image options")
	}
	publicID := attrs["data-public-id"]
	if opt.Crop == "" {
		opt.Crop = DefaultCrop
	}

	width, err := getInt(attrs, "width")
	if err != nil {
		return nil, err
	}
	height, err := getInt(attrs, "height")
	if err != nil {
		return nil, err
	}
	stepSize, err := getInt(m, "step_size")
	if err != nil {
		return nil, err
	}
	maxSize, err := getInt(m, "max_size")
	if err != nil {
		return nil, err
	}
	w, h := Size(width, height, stepSize, maxSize)
	if w != width || h != height {
		fs.Debugf(publicID, "Requesting %dx%d for %dx%d element", w, h, width, height)
	}
	if w > 0 {
		opt.Width = strconv.Itoa(w)
	}
	if h > 0 {
		opt.Height = strconv.Itoa(h)
	}

	src, err := cldurl.Build(publicID, opt)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build URL for %q", publicID)
	}
	return &Image{
		PublicID:  publicID,
		Src:       src,
		Width:     width,
		Height:    height,
		Layout:    attrs["layout"],
		ObjectFit: cldurl.DeriveObjectFit(opt.Crop),
		Alt:       attrs["alt"],
	}, nil
}

// String returns a description of the image for logging
func (img *Image) String() string {
	return fmt.Sprintf("%s (%dx%d)", img.PublicID, img.Width, img.Height)
}
