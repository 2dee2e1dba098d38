// Package configflags defines the flags used by cldimg.  It is
// decoupled into a separate package so it can be replaced.
package configflags

// Options set by command line flags
import (
	"log"
	"path/filepath"

	"github.com/cldimg/cldimg/fs"
	"github.com/cldimg/cldimg/fs/config"
	"github.com/cldimg/cldimg/fs/config/flags"
	"github.com/spf13/pflag"
)

var (
	// these will get interpreted into fs.Config via SetFlags() below
	verbose int
	quiet   bool
)

// AddFlags adds the non command specific flags to the command
func AddFlags(ci *fs.ConfigInfo, flagSet *pflag.FlagSet) {
	// NB defaults which aren't the zero for the type should be set in fs/config.go NewConfig
	flags.CountVarP(flagSet, &verbose, "verbose", "v", "Print lots more stuff (repeat for more)")
	flags.BoolVarP(flagSet, &quiet, "quiet", "q", false, "Print as little stuff as possible")
	flags.FVarP(flagSet, &ci.LogLevel, "log-level", "", "Log level DEBUG|INFO|NOTICE|ERROR")
	flags.BoolVarP(flagSet, &ci.UseJSONLog, "use-json-log", "", ci.UseJSONLog, "Use json log format")
	flags.StringVarP(flagSet, &ci.ConfigPath, "config", "", ci.ConfigPath, "Config file (default "+config.DefaultPath()+")"+config.ShellExpandHelp)
	flags.StringVarP(flagSet, &ci.Profile, "profile", "", ci.Profile, "Section of the config file to take default options from")
}

// SetFlags converts any flags into config which weren't straight forward
func SetFlags(ci *fs.ConfigInfo) {
	if verbose >= 2 {
		ci.LogLevel = fs.LogLevelDebug
	} else if verbose >= 1 {
		ci.LogLevel = fs.LogLevelInfo
	}
	if quiet {
		if verbose > 0 {
			log.Fatalf("Can't set -v and -q")
		}
		ci.LogLevel = fs.LogLevelError
	}
	logLevelFlag := pflag.Lookup("log-level")
	if logLevelFlag != nil && logLevelFlag.Changed {
		if verbose > 0 {
			log.Fatalf("Can't set -v and --log-level")
		}
		if quiet {
			log.Fatalf("Can't set -q and --log-level")
		}
	}

	// Make the config file absolute
	if ci.ConfigPath != "" {
		configPath, err := filepath.Abs(config.ExpandPath(ci.ConfigPath))
		if err == nil {
			ci.ConfigPath = configPath
		}
	}
}
