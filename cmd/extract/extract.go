// Package extract provides the extract command.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cldimg/cldimg/cmd"
	"github.com/cldimg/cldimg/fs"
	"github.com/cldimg/cldimg/fs/config/flags"
	"github.com/cldimg/cldimg/lib/element"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	htmlOutput bool
)

func init() {
	cmd.Root.AddCommand(commandDefinition)
	cmdFlags := commandDefinition.Flags()
	flags.BoolVarP(cmdFlags, &jsonOutput, "json", "", false, "Output a JSON list of images")
	flags.BoolVarP(cmdFlags, &htmlOutput, "html", "", false, "Output the <img> tag for each element")
}

var commandDefinition = &cobra.Command{
	Use:   "extract page.html",
	Short: `List the amp-cld-img elements of a page and their URLs.`,
	Long: `
cldimg extract reads an HTML page, finds the amp-cld-config script and
every amp-cld-img element and prints the public id and URL of each,
separated by a tab.  Use "-" to read the page from stdin.

The page config is applied over the default options from the config
file and the environment, and the element attributes over that.  The
page is only read, never rewritten.
`,
	Run: func(command *cobra.Command, args []string) {
		cmd.CheckArgs(1, 1, command, args)
		cmd.Run(command, func() error {
			return extract(context.Background(), os.Stdout, args[0])
		})
	},
}

// image is the JSON output for each element
type image struct {
	PublicID  string `json:"public_id"`
	URL       string `json:"url"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Layout    string `json:"layout,omitempty"`
	ObjectFit string `json:"object_fit,omitempty"`
}

// open returns the page to read
func open(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	in, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open page")
	}
	return in, nil
}

// extract writes the images found in the page called name to out
func extract(ctx context.Context, out io.Writer, name string) (err error) {
	in, err := open(name)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := in.Close()
		if err == nil {
			err = closeErr
		}
	}()
	page, err := element.ParsePage(in)
	if err != nil {
		return err
	}
	defaults, err := cmd.LoadDefaults(ctx)
	if err != nil {
		return err
	}
	images, err := page.Images(defaults.ConfigMap())
	if err != nil {
		return err
	}
	fs.Infof(name, "Found %d images", len(images))

	switch {
	case jsonOutput:
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "\t")
		list := make([]image, 0, len(images))
		for _, img := range images {
			list = append(list, image{
				PublicID:  img.PublicID,
				URL:       img.Src,
				Width:     img.Width,
				Height:    img.Height,
				Layout:    img.Layout,
				ObjectFit: img.ObjectFit,
			})
		}
		return errors.Wrap(enc.Encode(list), "failed to write JSON")
	case htmlOutput:
		for _, img := range images {
			if err := img.Render(out); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}
	default:
		for _, img := range images {
			if _, err := fmt.Fprintf(out, "%s\t%s\n", img.PublicID, img.Src); err != nil {
				return err
			}
		}
	}
	return nil
}
