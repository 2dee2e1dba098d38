package cldurl

import (
	"sort"
	"strings"
)

// param is a single transformation parameter such as w_100
type param struct {
	key   string
	value string
}

// joinParams renders the params which have a value as key_value,
// sorted, separated by commas
func joinParams(params ...param) string {
	rendered := make([]string, 0, len(params))
	for _, p := range params {
		if p.value == "" {
			continue
		}
		rendered = append(rendered, p.key+"_"+p.value)
	}
	sort.Strings(rendered)
	return strings.Join(rendered, ",")
}

// transformationString builds the transformation path component.
//
// The raw transformation goes first untouched, then the styling
// parameters, then the sizing ones.
func transformationString(opt Options) string {
	width := opt.TransformationWidth
	if width == "" {
		width = opt.Width
	}
	height := opt.TransformationHeight
	if height == "" {
		height = opt.Height
	}
	background := opt.Background
	if strings.HasPrefix(background, "#") {
		background = "rgb:" + background[1:]
	}

	styling := joinParams(
		param{"b", background},
		param{"bo", opt.Border},
		param{"e", opt.Effect},
		param{"f", opt.FetchFormat},
		param{"q", opt.Quality},
	)
	sizing := joinParams(
		param{"dpr", opt.DPR},
		param{"ar", opt.AspectRatio},
		param{"c", opt.Crop},
		param{"g", opt.Gravity},
		param{"h", height},
		param{"w", width},
	)
	return joinSegments(opt.RawTransformation, styling, sizing)
}
