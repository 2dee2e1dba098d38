// Getters for ConfigMap

package fs

import (
	"os"

	"github.com/cldimg/cldimg/fs/config/configmap"
)

// A configmap.Getter to read from the environment CLDIMG_CONFIG_profile_option_name
type configEnvVars string

// Get a config item from the environment variables if possible
func (profile configEnvVars) Get(key string) (value string, ok bool) {
	envKey := ConfigToEnv(string(profile), key)
	value, ok = os.LookupEnv(envKey)
	if ok {
		Debugf(nil, "Setting %s=%q for profile %q from environment variable %s", key, value, profile, envKey)
	}
	return value, ok
}

// A configmap.Getter to read from the environment CLDIMG_option_name
type optionEnvVars struct{}

// Get a config item from the option environment variables if possible
func (optionEnvVars) Get(key string) (value string, ok bool) {
	envKey := OptionToEnv(key)
	value, ok = os.LookupEnv(envKey)
	if ok {
		Debugf(nil, "Setting %s=%q from environment variable %s", key, value, envKey)
	}
	return value, ok
}

// ProfileEnvVars returns a Getter for the options of profile set in
// the environment as CLDIMG_CONFIG_PROFILE_OPTION_NAME
func ProfileEnvVars(profile string) configmap.Getter {
	return configEnvVars(profile)
}

// OptionEnvVars returns a Getter for the options set in the
// environment as CLDIMG_OPTION_NAME
func OptionEnvVars() configmap.Getter {
	return optionEnvVars{}
}
