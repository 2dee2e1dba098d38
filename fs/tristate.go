package fs

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Tristate is a boolean that can be unset
type Tristate struct {
	Value bool
	Valid bool
}

// NewTristate makes a set Tristate
func NewTristate(value bool) Tristate {
	return Tristate{Value: value, Valid: true}
}

// IsTrue returns true only if the value is set and true
func (t Tristate) IsTrue() bool {
	return t.Valid && t.Value
}

// Or returns the value if set or def if not
func (t Tristate) Or(def bool) bool {
	if !t.Valid {
		return def
	}
	return t.Value
}

// String renders the tristate as true/false/unset
func (t Tristate) String() string {
	if !t.Valid {
		return "unset"
	}
	return strconv.FormatBool(t.Value)
}

// Set the Tristate from a string. The empty string and "unset"
// clear it.
func (t *Tristate) Set(s string) error {
	if s == "" || s == "unset" {
		*t = Tristate{}
		return nil
	}
	value, err := strconv.ParseBool(s)
	if err != nil {
		return errors.Errorf("failed to parse Tristate %q", s)
	}
	*t = NewTristate(value)
	return nil
}

// Type of the value
func (t *Tristate) Type() string {
	return "Tristate"
}

// Scan implements the fmt.Scanner interface
func (t *Tristate) Scan(s fmt.ScanState, ch rune) error {
	token, err := s.Token(true, nil)
	if err != nil {
		return err
	}
	return t.Set(string(token))
}
