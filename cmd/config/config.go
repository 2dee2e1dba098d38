// Package config provides the config command.
package config

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cldimg/cldimg/cmd"
	"github.com/cldimg/cldimg/fs/config/flags"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var long bool

func init() {
	cmd.Root.AddCommand(configCommand)
	cmdFlags := configCommand.Flags()
	flags.BoolVarP(cmdFlags, &long, "long", "l", false, "Show the cloud name of each profile")
}

var configCommand = &cobra.Command{
	Use:   "config file|profiles|show [profile]",
	Short: `Show the config file and the profiles in it.`,
	Long: `
cldimg config file prints the path of the config file in use.

cldimg config profiles lists the profiles in the config file.  With
--long the cloud name each profile resolves to is shown too.

cldimg config show prints the config file, or with a profile name
just the keys set in that profile's section.

The config file is only read.  Edit it with a text editor.
`,
	Run: func(command *cobra.Command, args []string) {
		cmd.CheckArgs(1, 2, command, args)
		cmd.Run(command, func() error {
			return config(context.Background(), os.Stdout, args)
		})
	},
}

// config runs the function named by args[0]
func config(ctx context.Context, out io.Writer, args []string) error {
	defaults, err := cmd.LoadDefaults(ctx)
	if err != nil {
		return err
	}
	file := defaults.File()
	switch args[0] {
	case "file":
		if len(args) > 1 {
			return errors.New("config file takes no arguments")
		}
		_, err = fmt.Fprintln(out, file.Path())
		return err
	case "profiles":
		if len(args) > 1 {
			return errors.New("config profiles takes no arguments")
		}
		profiles := defaults.Profiles()
		maxlen := 1
		for _, profile := range profiles {
			if len(profile) > maxlen {
				maxlen = len(profile)
			}
		}
		for _, profile := range profiles {
			if long {
				cloudName, _ := file.GetValue(profile, "cloud_name")
				_, err = fmt.Fprintf(out, "%-*s %s\n", maxlen+1, profile+":", cloudName)
			} else {
				_, err = fmt.Fprintln(out, profile)
			}
			if err != nil {
				return err
			}
		}
		return nil
	case "show":
		if len(args) == 1 {
			data, err := file.Serialize()
			if err != nil {
				return err
			}
			_, err = io.WriteString(out, data)
			return err
		}
		profile := args[1]
		if !file.HasSection(profile) {
			return errors.Errorf("profile %q not found in config file %q", profile, file.Path())
		}
		if _, err = fmt.Fprintf(out, "[%s]\n", profile); err != nil {
			return err
		}
		for _, key := range file.GetKeyList(profile) {
			value, _ := file.GetValue(profile, key)
			if _, err = fmt.Fprintf(out, "%s = %s\n", key, value); err != nil {
				return err
			}
		}
		return nil
	}
	return errors.Errorf("unknown config function %q", args[0])
}
