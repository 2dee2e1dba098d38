package cldurl

// cropToObjectFit is a best effort guess of the CSS object-fit which
// matches each crop mode
var cropToObjectFit = map[string]string{
	"scale":        "fill",
	"fit":          "contain",
	"limit":        "scale-down",
	"mfit":         "contain",
	"fill":         "cover",
	"lfill":        "scale-down",
	"pad":          "contain",
	"lpad":         "contain",
	"mpad":         "contain",
	"fill_pad":     "cover",
	"crop":         "cover",
	"thumb":        "cover",
	"imagga_crop":  "cover",
	"imagga_scale": "cover",
}

// DeriveObjectFit returns the amp-object-fit-* class for cropMode or
// "" if the crop mode isn't known.
func DeriveObjectFit(cropMode string) string {
	fit, ok := cropToObjectFit[cropMode]
	if !ok {
		return ""
	}
	return "amp-object-fit-" + fit
}

// GetAsBoolean returns true for the spellings of true used in HTML
// attributes: "1", "TRUE", "true" and "True".
func GetAsBoolean(value string) bool {
	switch value {
	case "1", "TRUE", "true", "True":
		return true
	}
	return false
}
