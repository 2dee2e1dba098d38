// Package build provides the build command.
package build

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cldimg/cldimg/cmd"
	"github.com/cldimg/cldimg/fs"
	"github.com/cldimg/cldimg/fs/config/flags"
	"github.com/cldimg/cldimg/lib/cldurl"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	options    []string
	jsonOutput bool
)

func init() {
	cmd.Root.AddCommand(commandDefinition)
	cmdFlags := commandDefinition.Flags()
	flags.StringArrayVarP(cmdFlags, &options, "option", "o", nil, "Option in the form key=value (repeat for more)")
	flags.BoolVarP(cmdFlags, &jsonOutput, "json", "", false, "Output the URL as a JSON object")
}

var commandDefinition = &cobra.Command{
	Use:   "build public_id",
	Short: `Print the delivery URL for a public id.`,
	Long: `
cldimg build prints the delivery URL for the public id given, eg

    $ cldimg build -o cloud_name=demo -o width=100 -o crop=fill sample
    https://res.cloudinary.com/demo/image/upload/c_fill,w_100/sample

Options are given with -o using their snake_case names and override
those from the config file and the environment.  Use --json to get

    {"public_id":"sample","url":"https://..."}
`,
	Run: func(command *cobra.Command, args []string) {
		cmd.CheckArgs(1, 1, command, args)
		cmd.Run(command, func() error {
			return build(context.Background(), os.Stdout, args[0], options, jsonOutput)
		})
	},
}

// result is the JSON output
type result struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// build writes the URL for publicID to out
func build(ctx context.Context, out io.Writer, publicID string, pairs []string, asJSON bool) error {
	overrides, err := cmd.ParseKeyValues(pairs)
	if err != nil {
		return err
	}
	defaults, err := cmd.LoadDefaults(ctx)
	if err != nil {
		return err
	}
	opt, err := defaults.Options(overrides)
	if err != nil {
		return err
	}
	url, err := cldurl.Build(publicID, opt)
	if err != nil {
		return err
	}
	fs.Debugf(publicID, "Built %q", url)
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		err = enc.Encode(result{PublicID: publicID, URL: url})
		return errors.Wrap(err, "failed to write JSON")
	}
	_, err = fmt.Fprintln(out, url)
	return err
}
