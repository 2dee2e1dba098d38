// Package configmap provides an abstraction for reading layered config
package configmap

import (
	"net/url"
	"strings"
)

// Getter provides an interface to get config items
type Getter interface {
	// Get should get an item with the key passed in and return
	// the value. If the item is found then it should return true,
	// otherwise false.
	Get(key string) (value string, ok bool)
}

// Map layers Getters, the first to find a key wins
type Map struct {
	getters []Getter
}

// New returns an empty Map
func New() *Map {
	return &Map{}
}

// AddGetter appends a getter onto the end of the getters
//
// Getters added first take priority.
func (c *Map) AddGetter(getter Getter) *Map {
	if getter != nil {
		c.getters = append(c.getters, getter)
	}
	return c
}

// Get gets an item with the key passed in and return the value from
// the first getter. If the item is found then it returns true,
// otherwise false.
func (c *Map) Get(key string) (value string, ok bool) {
	for _, do := range c.getters {
		value, ok = do.Get(key)
		if ok {
			return value, ok
		}
	}
	return "", false
}

// Simple is a Getter over a plain map
type Simple map[string]string

// Get the value
func (c Simple) Get(key string) (value string, ok bool) {
	value, ok = c[key]
	return value, ok
}

// Values is a Getter reading the first value of each key of a query
// string
type Values url.Values

// Get the value
func (v Values) Get(key string) (value string, ok bool) {
	vs, ok := v[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// renamed is a Getter which translates the snake_case config names
// into another naming scheme before looking them up
type renamed struct {
	getter Getter
	rename func(string) string
}

// Get the value
func (r renamed) Get(key string) (value string, ok bool) {
	return r.getter.Get(r.rename(key))
}

// Kebab returns a Getter which looks snake_case keys up in getter as
// kebab-case, the way HTML attributes are written.
func Kebab(getter Getter) Getter {
	return renamed{getter: getter, rename: SnakeToKebab}
}

// Camel returns a Getter which looks snake_case keys up in getter as
// lowerCamelCase, the way JSON config is written.
func Camel(getter Getter) Getter {
	return renamed{getter: getter, rename: SnakeToCamel}
}

// SnakeToKebab converts snake_case to kebab-case
func SnakeToKebab(in string) string {
	return strings.ReplaceAll(in, "_", "-")
}

// SnakeToCamel converts snake_case to lowerCamelCase
func SnakeToCamel(in string) string {
	parts := strings.Split(in, "_")
	var out strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 || out.Len() == 0 {
			out.WriteString(part)
			continue
		}
		out.WriteString(strings.ToUpper(part[:1]))
		out.WriteString(part[1:])
	}
	return out.String()
}
