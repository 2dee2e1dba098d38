// Package img provides the img command.
package img

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cldimg/cldimg/cmd"
	"github.com/cldimg/cldimg/fs/config/flags"
	"github.com/cldimg/cldimg/lib/element"
	"github.com/spf13/cobra"
)

var attributes []string

func init() {
	cmd.Root.AddCommand(commandDefinition)
	cmdFlags := commandDefinition.Flags()
	flags.StringArrayVarP(cmdFlags, &attributes, "attribute", "a", nil, "Element attribute in the form name=value (repeat for more)")
}

var commandDefinition = &cobra.Command{
	Use:   "img [public_id]",
	Short: `Print the <img> tag for an amp-cld-img element.`,
	Long: `
cldimg img resolves an amp-cld-img element with the attributes given
with -a and prints the <img> tag it stands for, eg

    $ cldimg img -a cloud-name=demo -a width=100 -a height=100 sample
    <img src="https://res.cloudinary.com/demo/image/upload/c_fill,h_100,w_100/sample" width="100" height="100" class="amp-object-fit-cover">

The public id may be given as an argument or as -a data-public-id=...

Attributes use their HTML (kebab-case) names, so the size can be
stepped with step-size and capped with max-size.  The crop defaults
to fill.
`,
	Run: func(command *cobra.Command, args []string) {
		cmd.CheckArgs(0, 1, command, args)
		cmd.Run(command, func() error {
			publicID := ""
			if len(args) > 0 {
				publicID = args[0]
			}
			return img(context.Background(), os.Stdout, publicID, attributes)
		})
	},
}

// img writes the <img> tag for the element to out
func img(ctx context.Context, out io.Writer, publicID string, pairs []string) error {
	attrs, err := cmd.ParseKeyValues(pairs)
	if err != nil {
		return err
	}
	if publicID != "" {
		attrs["data-public-id"] = publicID
	}
	defaults, err := cmd.LoadDefaults(ctx)
	if err != nil {
		return err
	}
	image, err := element.New(element.Attributes(attrs), defaults.ConfigMap())
	if err != nil {
		return err
	}
	err = image.Render(out)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out)
	return err
}
