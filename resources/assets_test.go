package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogKeys(t *testing.T) {
	keys, err := CatalogKeys()
	require.NoError(t, err)
	assert.Equal(t, []string{"eyes", "head", "legs", "upper"}, keys)
}

func TestCatalogIsCached(t *testing.T) {
	first, err := Catalog("head")
	require.NoError(t, err)
	second, err := Catalog("head")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Contains(t, string(first), "Head Innervation")

	_, err = Catalog("tail")
	assert.Error(t, err)
}

func TestIcon(t *testing.T) {
	icon, err := Icon()
	require.NoError(t, err)
	assert.Equal(t, "icon/innervation.svg", icon.Name())
	assert.NotEmpty(t, icon.Content())
	assert.Same(t, icon, MustIcon())
}
