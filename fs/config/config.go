// Package config finds the config file and layers the places default
// options come from.
package config

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/cldimg/cldimg/fs"
	"github.com/cldimg/cldimg/fs/config/cloudinaryurl"
	"github.com/cldimg/cldimg/fs/config/configfile"
	"github.com/cldimg/cldimg/fs/config/configmap"
	"github.com/cldimg/cldimg/lib/cldurl"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

const (
	configFileName = "cldimg.conf"
	configDirName  = "cldimg"
)

// ShellExpandHelp describes what ExpandPath does for inclusion into help
const ShellExpandHelp = "\n\nLeading `~` will be expanded in the file name as will environment variables such as `${HOME}`.\n"

// ExpandPath replaces a leading "~" with the home directory and
// expands all environment variables afterwards.
func ExpandPath(s string) string {
	if s == "" {
		return s
	}
	if s[0] == '~' {
		expanded, err := homedir.Expand(s)
		if err == nil {
			s = expanded
		}
	}
	return os.ExpandEnv(s)
}

// DefaultPath returns where the config file lives if --config isn't
// given: $XDG_CONFIG_HOME/cldimg/cldimg.conf or
// ~/.config/cldimg/cldimg.conf
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, configDirName, configFileName)
	}
	home, err := homedir.Dir()
	if err != nil {
		fs.Errorf(nil, "Couldn't find home directory - using config file in current directory: %v", err)
		return configFileName
	}
	return filepath.Join(home, ".config", configDirName, configFileName)
}

// Defaults are the default options which don't come from the command
// line or the request.
type Defaults struct {
	profile string
	file    *configfile.Storage
	url     configmap.Simple // from CLOUDINARY_URL, may be nil
}

// Load reads the config file and the environment according to the
// config in ctx.
//
// A missing config file is only an error if it was asked for
// explicitly.  A profile other than the default must exist in the
// config file.
func Load(ctx context.Context) (*Defaults, error) {
	ci := fs.GetConfig(ctx)
	path := DefaultPath()
	if ci.ConfigPath != "" {
		path = ExpandPath(ci.ConfigPath)
	}
	file := configfile.New(path)
	err := file.Load()
	switch {
	case err == configfile.ErrorConfigFileNotFound:
		if ci.ConfigPath != "" {
			return nil, errors.Wrapf(err, "--config %q", path)
		}
		fs.Debugf(nil, "Config file %q not found - using defaults", path)
	case err != nil:
		return nil, errors.Wrapf(err, "failed to load config file %q", path)
	default:
		fs.Debugf(nil, "Using config file %q", path)
	}

	profile := ci.Profile
	if profile == "" {
		profile = fs.NewConfig().Profile
	}
	if profile != fs.NewConfig().Profile && !file.HasSection(profile) {
		return nil, errors.Errorf("profile %q not found in config file %q", profile, path)
	}

	url, err := cloudinaryurl.FromEnvironment()
	if err != nil {
		return nil, err
	}
	return &Defaults{
		profile: profile,
		file:    file,
		url:     url,
	}, nil
}

// Profile returns the name of the profile in use
func (d *Defaults) Profile() string {
	return d.profile
}

// File returns the config file in use. It is empty if the file
// doesn't exist.
func (d *Defaults) File() *configfile.Storage {
	return d.file
}

// Profiles returns the sorted names of the profiles in the config
// file
func (d *Defaults) Profiles() []string {
	var profiles []string
	for _, section := range d.file.GetSectionList() {
		if section != configfile.DefaultSection {
			profiles = append(profiles, section)
		}
	}
	sort.Strings(profiles)
	return profiles
}

// ConfigMap layers the sources of options, most specific first
//
//   - overrides in the order given
//   - CLDIMG_CONFIG_PROFILE_OPTION environment variables
//   - CLDIMG_OPTION environment variables
//   - the profile section of the config file
//   - CLOUDINARY_URL
func (d *Defaults) ConfigMap(overrides ...configmap.Getter) *configmap.Map {
	m := configmap.New()
	for _, override := range overrides {
		m.AddGetter(override)
	}
	m.AddGetter(fs.ProfileEnvVars(d.profile))
	m.AddGetter(fs.OptionEnvVars())
	if d.file != nil {
		m.AddGetter(d.file.Profile(d.profile))
	}
	if d.url != nil {
		m.AddGetter(d.url)
	}
	return m
}

// Options reads the URL options with overrides layered over the
// defaults.
func (d *Defaults) Options(overrides ...configmap.Getter) (cldurl.Options, error) {
	opt, err := cldurl.OptionsFromMap(d.ConfigMap(overrides...))
	if err != nil {
		return opt, errors.Wrap(err, "bad options")
	}
	return opt, nil
}
