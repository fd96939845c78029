package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersion(t *testing.T) {
	assert.NotEmpty(t, GetVersion())
	assert.NotEmpty(t, GetGitCommit())
	assert.NotEmpty(t, GetBuildDate())
	assert.Contains(t, String(), GetVersion())
}

func TestParse(t *testing.T) {
	orig := version
	t.Cleanup(func() { version = orig })

	version = "1.4.2"
	v, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v.Major())
	assert.False(t, IsDevelopment())

	version = "1.5.0-rc.1"
	assert.True(t, IsDevelopment())

	version = "not-a-version"
	_, err = Parse()
	require.Error(t, err)
	assert.True(t, IsDevelopment())
}
