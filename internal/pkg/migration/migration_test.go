package migration

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Guards(t *testing.T) {
	assert.Error(t, Run("", Up))
	assert.Error(t, Run("postgres://u:p@127.0.0.1:1/db?sslmode=disable", Direction("sideways")))
}

func TestEmbeddedFiles(t *testing.T) {
	ups, err := fs.Glob(files, "sql/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(files, "sql/*.down.sql")
	require.NoError(t, err)

	assert.Len(t, ups, 3)
	assert.Len(t, downs, len(ups))
}
