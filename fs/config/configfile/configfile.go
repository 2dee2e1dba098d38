// Package configfile reads profiles of default options from an INI
// file such as
//
//	[default]
//	cloud_name = demo
//	secure = true
//
//	[thumbs]
//	crop = thumb
//	gravity = face
//
// Keys in a [DEFAULT] section apply to every profile.  A profile
// called thumbs.small inherits the keys of thumbs.
package configfile

import (
	"bytes"
	"io"
	"os"
	"sync"
	"time"

	"github.com/cldimg/cldimg/fs"
	"github.com/cldimg/cldimg/fs/config/configmap"
	"github.com/pkg/errors"
	"github.com/unknwon/goconfig"
)

// ErrorConfigFileNotFound is returned when the config file doesn't exist
var ErrorConfigFileNotFound = errors.New("config file not found")

// Storage is a read only view of an INI config file which reloads
// itself if the file changes on disk.
type Storage struct {
	path      string
	mu        sync.Mutex           // to protect the following variables
	gc        *goconfig.ConfigFile // config file loaded - not thread safe
	fiModTime time.Time            // stat of the file when last loaded
	fiSize    int64                // stat of the file size
}

// New returns a Storage for the config file at path.  Call Load to
// read it.
func New(path string) *Storage {
	return &Storage{path: path}
}

// Path returns the path of the config file
func (s *Storage) Path() string {
	return s.path
}

// Check to see if we need to reload the config
//
// mu must be held when calling this
func (s *Storage) _check() {
	if s.gc == nil {
		if err := s._load(); err != nil && err != ErrorConfigFileNotFound {
			fs.Errorf(nil, "Failed to read config file: %v", err)
		}
		return
	}
	if s.path == "" {
		return
	}
	fi, err := os.Stat(s.path)
	if err != nil {
		return
	}
	if fi.ModTime().After(s.fiModTime) || fi.Size() != s.fiSize {
		fs.Debugf(nil, "Config file has changed externally - reloading")
		err := s._load()
		if err != nil {
			fs.Errorf(nil, "Failed to read config file - using previous config: %v", err)
		}
	}
}

// _load the config from the file
//
// mu must be held when calling this
func (s *Storage) _load() (err error) {
	// Make sure we have a sensible default even when we error
	defer func() {
		if s.gc == nil {
			s.gc, _ = goconfig.LoadFromReader(bytes.NewReader([]byte{}))
		}
	}()

	if s.path == "" {
		return ErrorConfigFileNotFound
	}
	fd, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrorConfigFileNotFound
		}
		return errors.Wrap(err, "failed to open config file")
	}
	defer func() {
		if closeErr := fd.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	fi, err := fd.Stat()
	if err != nil {
		return errors.Wrap(err, "failed to stat config file")
	}
	s.fiModTime, s.fiSize = fi.ModTime(), fi.Size()

	gc, err := load(fd)
	if err != nil {
		return err
	}
	s.gc = gc
	return nil
}

// load parses the INI data in in
func load(in io.Reader) (*goconfig.ConfigFile, error) {
	gc, err := goconfig.LoadFromReader(in)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}
	return gc, nil
}

// Load the config from the file
func (s *Storage) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s._load()
}

// DefaultSection holds the keys every profile inherits
const DefaultSection = goconfig.DEFAULT_SECTION

// Serialize the config into a string
func (s *Storage) Serialize() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s._check()
	var buf bytes.Buffer
	if err := goconfig.SaveConfigData(s.gc, &buf); err != nil {
		return "", errors.Wrap(err, "failed to serialize config file")
	}
	return buf.String(), nil
}

// HasSection returns true if section exists in the config file
func (s *Storage) HasSection(section string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s._check()
	_, err := s.gc.GetSection(section)
	return err == nil
}

// GetSectionList returns a slice of strings with names for all the
// sections
func (s *Storage) GetSectionList() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s._check()
	return s.gc.GetSectionList()
}

// GetKeyList returns the keys in this section
func (s *Storage) GetKeyList(section string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s._check()
	return s.gc.GetKeyList(section)
}

// GetValue returns the key in section with a found flag.
//
// A section called a.b inherits the keys of section a, and keys
// missing from every section are looked for in [DEFAULT].
func (s *Storage) GetValue(section string, key string) (value string, found bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s._check()
	value, err := s.gc.GetValue(section, key)
	if err == nil {
		return value, true
	}
	if section == DefaultSection {
		return "", false
	}
	value, err = s.gc.GetValue(DefaultSection, key)
	if err != nil {
		return "", false
	}
	return value, true
}

// Profile returns a Getter for the options in section
func (s *Storage) Profile(section string) configmap.Getter {
	return profile{s: s, section: section}
}

// profile is a configmap.Getter for one section of the file
type profile struct {
	s       *Storage
	section string
}

// Get the value
func (p profile) Get(key string) (value string, ok bool) {
	value, ok = p.s.GetValue(p.section, key)
	// Ignore empty lines in the config file
	if value == "" {
		ok = false
	}
	return value, ok
}
