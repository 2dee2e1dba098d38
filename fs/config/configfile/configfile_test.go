package configfile

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configData = `[default]
cloud_name = demo
secure = true

[thumbs]
crop = thumb
gravity = face
width = 150

[thumbs.small]
width = 50

`

// Fill up a temporary config file with the data passed in
func setConfigFile(t *testing.T, data string) string {
	filePath := filepath.Join(t.TempDir(), "cldimg.conf")
	require.NoError(t, os.WriteFile(filePath, []byte(data), 0600))
	return filePath
}

// toUnix converts \r\n to \n in buf
func toUnix(buf string) string {
	if runtime.GOOS == "windows" {
		return strings.ReplaceAll(buf, "\r\n", "\n")
	}
	return buf
}

func TestConfigFile(t *testing.T) {
	data := New(setConfigFile(t, configData))
	require.NoError(t, data.Load())

	t.Run("Serialize", func(t *testing.T) {
		buf, err := data.Serialize()
		require.NoError(t, err)
		assert.Equal(t, configData, toUnix(buf))
	})
	t.Run("HasSection", func(t *testing.T) {
		assert.True(t, data.HasSection("thumbs"))
		assert.False(t, data.HasSection("missing"))
	})
	t.Run("GetSectionList", func(t *testing.T) {
		assert.Equal(t, []string{
			"default",
			"thumbs",
			"thumbs.small",
		}, data.GetSectionList())
	})
	t.Run("GetKeyList", func(t *testing.T) {
		assert.Equal(t, []string{"crop", "gravity", "width"}, data.GetKeyList("thumbs"))
		assert.Empty(t, data.GetKeyList("missing"))
	})
	t.Run("GetValue", func(t *testing.T) {
		value, ok := data.GetValue("default", "cloud_name")
		assert.True(t, ok)
		assert.Equal(t, "demo", value)

		value, ok = data.GetValue("thumbs", "cloud_name")
		assert.False(t, ok)
		assert.Equal(t, "", value)

		value, ok = data.GetValue("missing", "crop")
		assert.False(t, ok)
		assert.Equal(t, "", value)
	})
	t.Run("Inherit", func(t *testing.T) {
		value, ok := data.GetValue("thumbs.small", "width")
		assert.True(t, ok)
		assert.Equal(t, "50", value)

		value, ok = data.GetValue("thumbs.small", "crop")
		assert.True(t, ok)
		assert.Equal(t, "thumb", value)
	})
	t.Run("Profile", func(t *testing.T) {
		p := data.Profile("thumbs")
		value, ok := p.Get("gravity")
		assert.True(t, ok)
		assert.Equal(t, "face", value)
		_, ok = p.Get("effect")
		assert.False(t, ok)
	})
}

func TestConfigFileDefaultSection(t *testing.T) {
	data := New(setConfigFile(t, "[DEFAULT]\nquality = auto\n\n[one]\nquality = 80\n\n[two]\ncrop = fit\n"))
	require.NoError(t, data.Load())

	value, ok := data.GetValue("one", "quality")
	assert.True(t, ok)
	assert.Equal(t, "80", value)

	value, ok = data.GetValue("two", "quality")
	assert.True(t, ok)
	assert.Equal(t, "auto", value)

	_, ok = data.GetValue("two", "gravity")
	assert.False(t, ok)
}

func TestConfigFileReload(t *testing.T) {
	path := setConfigFile(t, configData)
	data := New(path)
	require.NoError(t, data.Load())

	value, ok := data.GetValue("thumbs.small", "appended")
	assert.False(t, ok)
	assert.Equal(t, "", value)

	// Now write a new value on the end
	out, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0777)
	require.NoError(t, err)
	_, err = fmt.Fprintln(out, "appended = what magic")
	require.NoError(t, err)
	require.NoError(t, out.Close())

	// And check we magically reloaded it
	value, ok = data.GetValue("thumbs.small", "appended")
	assert.True(t, ok)
	assert.Equal(t, "what magic", value)
}

func TestConfigFileDoesNotExist(t *testing.T) {
	path := setConfigFile(t, configData)
	data := New(path)
	require.NoError(t, os.Remove(path))

	err := data.Load()
	require.Equal(t, ErrorConfigFileNotFound, err)

	// check that using data doesn't crash
	value, ok := data.GetValue("default", "cloud_name")
	assert.False(t, ok)
	assert.Equal(t, "", value)
}

func TestConfigFileNoPath(t *testing.T) {
	data := New("")
	assert.Equal(t, "", data.Path())
	require.Equal(t, ErrorConfigFileNotFound, data.Load())
	assert.False(t, data.HasSection("default"))
}

func TestConfigFileNotLoaded(t *testing.T) {
	data := New(setConfigFile(t, configData))
	value, ok := data.GetValue("default", "cloud_name")
	assert.True(t, ok)
	assert.Equal(t, "demo", value)
}

func TestConfigFileBad(t *testing.T) {
	data := New(setConfigFile(t, "[unterminated\nkey = value\n"))
	err := data.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}
