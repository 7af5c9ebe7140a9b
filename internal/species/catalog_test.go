package species

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{
		"Tropical Rainforest",
		"Savanna",
		"Coastal Forest",
		"Dry Woodland",
		"Highland Forest",
	}, c.Regions())

	for _, region := range c.Regions() {
		assert.Len(t, c.Species(region), MaxPerRegion, region)
	}

	assert.True(t, c.Has("Savanna"))
	assert.False(t, c.Has("Atlantis"))
	assert.Nil(t, c.Species("Atlantis"))
	assert.Equal(t, 5, c.Len())
}

func TestSpeciesReturnsCopy(t *testing.T) {
	c := Default()

	list := c.Species("Savanna")
	require.NotEmpty(t, list)
	list[0] = "mutated"

	assert.Equal(t, "Acacia senegal", c.Species("Savanna")[0])
}

func TestRegisterTruncatesAndOverwrites(t *testing.T) {
	c := NewCatalog()

	long := make([]string, MaxPerRegion+5)
	for i := range long {
		long[i] = "sp"
	}
	c.Register(Region{Name: "Test", Species: long})
	assert.Len(t, c.Species("Test"), MaxPerRegion)

	c.Register(Region{Name: "Test", Species: []string{"only"}})
	assert.Equal(t, []string{"only"}, c.Species("Test"))
	assert.Equal(t, 1, c.Len())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "species.json")
	data := `{"regions":[{"name":"Mangrove","species":["Rhizophora mucronata","Avicennia marina"]}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mangrove"}, c.Regions())
	assert.Equal(t, []string{"Rhizophora mucronata", "Avicennia marina"}, c.Species("Mangrove"))
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"regions":[]}`), 0o644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}
