// Package cmd implements the cldimg command
//
// It is in a sub package so it's internals can be re-used elsewhere
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/cldimg/cldimg/fs"
	"github.com/cldimg/cldimg/fs/config"
	"github.com/cldimg/cldimg/fs/config/configfile"
	"github.com/cldimg/cldimg/fs/config/configflags"
	"github.com/cldimg/cldimg/fs/config/configmap"
	"github.com/cldimg/cldimg/lib/cldurl"
	"github.com/cldimg/cldimg/lib/exitcode"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Globals
var (
	// Flags
	version bool
	// Errors
	errorNotEnoughArguments = errors.New("not enough arguments")
	errorTooManyArguments   = errors.New("too many arguments")
	errorBadKeyValue        = errors.New("expecting key=value")
)

// Root is the main cldimg command
var Root = &cobra.Command{
	Use:   "cldimg",
	Short: "Build Cloudinary image delivery URLs",
	Long: `
cldimg builds Cloudinary delivery URLs from a public id and a set of
options without talking to Cloudinary.

Default options come from the profile selected with --profile in the
config file, from CLDIMG_OPTION_NAME environment variables and from
CLOUDINARY_URL.
`,
	Run: func(command *cobra.Command, args []string) {
		if version {
			ShowVersion()
			resolveExitCode(nil)
		}
		_ = command.Usage()
	},
}

// ShowVersion prints the version to stdout
func ShowVersion() {
	fmt.Printf("cldimg %s\n", fs.Version)
	fmt.Printf("- os/type: %s\n", runtime.GOOS)
	fmt.Printf("- os/arch: %s\n", runtime.GOARCH)
	fmt.Printf("- go/version: %s\n", runtime.Version())
}

// Run the function and exit with a code which depends on the error
// returned
func Run(command *cobra.Command, f func() error) {
	err := f()
	if err != nil {
		log.Printf("Failed to %s: %v", command.Name(), err)
	}
	resolveExitCode(err)
}

// CheckArgs checks there are enough arguments and prints a message if not
func CheckArgs(MinArgs, MaxArgs int, command *cobra.Command, args []string) {
	if len(args) < MinArgs {
		_ = command.Usage()
		_, _ = fmt.Fprintf(os.Stderr, "Command %s needs %d arguments minimum: you provided %d non flag arguments: %q\n", command.Name(), MinArgs, len(args), args)
		resolveExitCode(errorNotEnoughArguments)
	} else if len(args) > MaxArgs {
		_ = command.Usage()
		_, _ = fmt.Fprintf(os.Stderr, "Command %s needs %d arguments maximum: you provided %d non flag arguments: %q\n", command.Name(), MaxArgs, len(args), args)
		resolveExitCode(errorTooManyArguments)
	}
}

// ParseKeyValues turns a list of key=value strings into a config
// map.  Later values for the same key win.
func ParseKeyValues(pairs []string) (configmap.Simple, error) {
	m := make(configmap.Simple, len(pairs))
	for _, pair := range pairs {
		equals := strings.IndexRune(pair, '=')
		if equals <= 0 {
			return nil, errors.Wrapf(errorBadKeyValue, "%q", pair)
		}
		m[strings.TrimSpace(pair[:equals])] = pair[equals+1:]
	}
	return m, nil
}

// LoadDefaults reads the default options for the current profile
func LoadDefaults(ctx context.Context) (*config.Defaults, error) {
	return config.Load(ctx)
}

// initConfig is run by cobra after initialising the flags
func initConfig() {
	ci := fs.GetConfig(context.Background())

	// Finish parsing any command line flags
	configflags.SetFlags(ci)

	// Start the logger
	fs.InitLogging()

	// Write the args for debug purposes
	fs.Debugf("cldimg", "Version %q starting with parameters %q", fs.Version, os.Args)
}

// exitCode works out the process exit code for err
func exitCode(err error) int {
	if err == nil {
		return exitcode.Success
	}
	switch cause := errors.Cause(err); {
	case cause == errorNotEnoughArguments, cause == errorTooManyArguments, cause == errorBadKeyValue:
		return exitcode.UsageError
	case cause == configfile.ErrorConfigFileNotFound, os.IsNotExist(cause):
		return exitcode.FileNotFound
	case errors.Is(err, cldurl.ErrURLSuffixNotSupported),
		errors.Is(err, cldurl.ErrRootPathNotSupported),
		errors.Is(err, cldurl.ErrInvalidURLSuffix):
		return exitcode.BuildError
	default:
		return exitcode.UncategorizedError
	}
}

func resolveExitCode(err error) {
	os.Exit(exitCode(err))
}

func init() {
	cobra.OnInitialize(initConfig)
}

// Main runs cldimg interpreting flags and commands out of os.Args
func Main() {
	ci := fs.GetConfig(context.Background())
	configflags.AddFlags(ci, pflag.CommandLine)
	Root.Flags().BoolVarP(&version, "version", "V", false, "Print the version number")
	if err := Root.Execute(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}
