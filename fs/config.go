package fs

import (
	"context"
	"strings"
)

// Global
var (
	// globalConfig for cldimg
	globalConfig = NewConfig()

	// Version of cldimg, set at link time
	Version = "v0.1.0-DEV"
)

// ConfigInfo is the process wide config
type ConfigInfo struct {
	LogLevel   LogLevel
	UseJSONLog bool
	ConfigPath string // path of the INI config file
	Profile    string // section of the config file to take defaults from
}

// NewConfig creates a new config with everything set to the default
// value.  These are the ultimate defaults and are overridden by the
// command line flags.
func NewConfig() *ConfigInfo {
	c := new(ConfigInfo)

	// Set any values which aren't the zero for the type
	c.LogLevel = LogLevelNotice
	c.Profile = "default"

	return c
}

type configContextKeyType struct{}

// Context key for config
var configContextKey = configContextKeyType{}

// GetConfig returns the global or context sensitive config
func GetConfig(ctx context.Context) *ConfigInfo {
	if ctx == nil {
		return globalConfig
	}
	c := ctx.Value(configContextKey)
	if c == nil {
		return globalConfig
	}
	return c.(*ConfigInfo)
}

// AddConfig returns a mutable config structure based on a shallow
// copy of that found in ctx and returns a new context with that added
// to it.
func AddConfig(ctx context.Context) (context.Context, *ConfigInfo) {
	c := GetConfig(ctx)
	cCopy := new(ConfigInfo)
	*cCopy = *c
	newCtx := context.WithValue(ctx, configContextKey, cCopy)
	return newCtx, cCopy
}

// OptionToEnv converts an option name, eg "cloud-name" into an
// environment name "CLDIMG_CLOUD_NAME"
func OptionToEnv(name string) string {
	return "CLDIMG_" + strings.ToUpper(strings.Replace(name, "-", "_", -1))
}

// ConfigToEnv converts a profile name and option name, eg ("thumbs",
// "crop") into an environment name "CLDIMG_CONFIG_THUMBS_CROP"
func ConfigToEnv(section, name string) string {
	section = strings.Replace(section, ".", "_", -1)
	return "CLDIMG_CONFIG_" + strings.ToUpper(section+"_"+strings.Replace(name, "-", "_", -1))
}
