package element

import (
	"html/template"
	"io"
	"strings"

	"github.com/pkg/errors"
)

var imgTemplate = template.Must(template.New("img").Parse(
	`<img src="{{.Src}}"` +
		`{{if .Width}} width="{{.Width}}"{{end}}` +
		`{{if .Height}} height="{{.Height}}"{{end}}` +
		`{{if .ObjectFit}} class="{{.ObjectFit}}"{{end}}` +
		`{{if .Alt}} alt="{{.Alt}}"{{end}}>`))

// Render writes the <img> tag for img to out
func (img *Image) Render(out io.Writer) error {
	err := imgTemplate.Execute(out, img)
	if err != nil {
		return errors.Wrap(err, "failed to render img")
	}
	return nil
}

// HTML returns the <img> tag for img
func (img *Image) HTML() (string, error) {
	var buf strings.Builder
	err := img.Render(&buf)
	return buf.String(), err
}
