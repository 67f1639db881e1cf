package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	sunny, ok := c.Status("Clear")
	require.True(t, ok)
	assert.Equal(t, "Clear", sunny.Code)
	assert.True(t, sunny.Clear)

	rain, ok := c.Status("Rain")
	require.True(t, ok)
	assert.False(t, rain.Clear)

	_, ok = c.Status("Tornado")
	assert.False(t, ok)
	assert.Equal(t, "Unknown", c.Fallback().Code)
	assert.False(t, c.Fallback().Clear)

	acts := c.Activities()
	require.NotEmpty(t, acts)
	assert.Equal(t, "Vélo", acts[0].Name)
}

func TestActivitiesReturnsCopy(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	acts := c.Activities()
	acts[0].Name = "changed"
	assert.Equal(t, "Vélo", c.Activities()[0].Name)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `
fallback: {code: Unknown}
weatherStatuses:
  Clear: {label: Sunny, clear: true}
activities:
  - name: Swim
    conditions: {minTemp: 20, maxTemp: 35, minWind: 0, maxWind: 15, beau: true}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	st, ok := c.Status("Clear")
	require.True(t, ok)
	assert.Equal(t, "Sunny", st.Label)
	require.Len(t, c.Activities(), 1)
	assert.Equal(t, 35.0, c.Activities()[0].Conditions.MaxTemp)
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	_, ok := c.Status("Clouds")
	assert.True(t, ok)
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	tests := map[string]string{
		"malformed yaml":   "fallback: [",
		"missing fallback": "weatherStatuses: {}",
		"unnamed activity": "fallback: {code: U}\nactivities:\n  - conditions: {minTemp: 0, maxTemp: 1}",
		"inverted bounds":  "fallback: {code: U}\nactivities:\n  - name: X\n    conditions: {minTemp: 30, maxTemp: 10}",
		"inverted wind":    "fallback: {code: U}\nactivities:\n  - name: X\n    conditions: {minWind: 30, maxWind: 10}",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
