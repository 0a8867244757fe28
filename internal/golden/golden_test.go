package golden

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCases(t *testing.T) {
	manifest, err := LoadManifest("testdata/manifest.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, manifest.Cases)

	for _, c := range manifest.Cases {
		t.Run(c.Name, func(t *testing.T) {
			actual, expected, err := Run("testdata", c)
			require.NoError(t, err)
			assert.Equal(t, expected, actual)
		})
	}
}
