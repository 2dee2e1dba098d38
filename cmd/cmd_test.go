package cmd

import (
	"os"
	"testing"

	"github.com/cldimg/cldimg/fs/config/configfile"
	"github.com/cldimg/cldimg/fs/config/configmap"
	"github.com/cldimg/cldimg/lib/cldurl"
	"github.com/cldimg/cldimg/lib/exitcode"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyValues(t *testing.T) {
	m, err := ParseKeyValues([]string{"cloud_name=demo", "raw_transformation=l_text:a=b", "width=1", "width=2", "effect="})
	require.NoError(t, err)
	assert.Equal(t, configmap.Simple{
		"cloud_name":         "demo",
		"raw_transformation": "l_text:a=b",
		"width":              "2",
		"effect":             "",
	}, m)

	for _, bad := range []string{"novalue", "=value", ""} {
		_, err := ParseKeyValues([]string{bad})
		assert.Error(t, err, bad)
		assert.Equal(t, exitcode.UsageError, exitCode(err), bad)
	}
}

func TestExitCode(t *testing.T) {
	_, err := cldurl.Build("x", cldurl.Options{URLSuffix: "a.b"})
	require.Error(t, err)
	_, statErr := os.Stat("/this/does/not/exist")
	require.Error(t, statErr)

	for _, test := range []struct {
		err  error
		want int
	}{
		{nil, exitcode.Success},
		{errorNotEnoughArguments, exitcode.UsageError},
		{errorTooManyArguments, exitcode.UsageError},
		{errors.Wrap(configfile.ErrorConfigFileNotFound, "--config"), exitcode.FileNotFound},
		{errors.Wrap(statErr, "open page"), exitcode.FileNotFound},
		{err, exitcode.BuildError},
		{errors.Wrap(err, "build"), exitcode.BuildError},
		{errors.New("boom"), exitcode.UncategorizedError},
	} {
		assert.Equal(t, test.want, exitCode(test.err), "%v", test.err)
	}
}
