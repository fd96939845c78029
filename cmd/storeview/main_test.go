package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/storeview/internal/cli"
	"github.com/rshade/storeview/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		require.NotNil(t, root)
		assert.Equal(t, "storeview", root.Use)
	})
}

func TestRunVersion(t *testing.T) {
	t.Setenv("STOREVIEW_HOME", t.TempDir())
	t.Setenv("STOREVIEW_LOGGING_LEVEL", "error")

	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = []string{"storeview", "version", "--short"}

	require.NoError(t, run())
}
