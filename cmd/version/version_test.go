package version

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cldimg/cldimg/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	devNull, err := os.OpenFile(filepath.Join(t.TempDir(), "stdout"), os.O_CREATE|os.O_WRONLY, 0600)
	require.NoError(t, err)
	oldOsStdout := os.Stdout
	os.Stdout = devNull
	defer func() {
		os.Stdout = oldOsStdout
		_ = devNull.Close()
	}()

	cmd.Root.SetArgs([]string{"version"})
	assert.NotPanics(t, func() {
		assert.NoError(t, cmd.Root.Execute())
	})
}
