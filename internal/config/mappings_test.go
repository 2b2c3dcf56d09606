package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mappingYAML = `
ETO:
  resistance0: channels[0].resistance
  resistance1: channels[1].resistance
  temperature: temperature
MPMS:
  moment: moment
`

func TestParseResultMappings(t *testing.T) {
	m, err := ParseResultMappings(strings.NewReader(mappingYAML))
	require.NoError(t, err)
	require.Len(t, m, 2)

	// the file maps resultField -> sourcePath; the parsed table is
	// inverted for the projection engine
	eto := m["ETO"]
	require.NotNil(t, eto)
	assert.Equal(t, "resistance0", eto["channels[0].resistance"])
	assert.Equal(t, "resistance1", eto["channels[1].resistance"])
	assert.Equal(t, "temperature", eto["temperature"])

	mpms := m["MPMS"]
	require.NotNil(t, mpms)
	assert.Equal(t, "moment", mpms["moment"])
}

func TestParseResultMappings_Invalid(t *testing.T) {
	_, err := ParseResultMappings(strings.NewReader("ETO: [not, a, map]"))
	assert.Error(t, err)
}

func TestLoadResultMappings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(mappingYAML), 0644))

	m, err := LoadResultMappings(path)
	require.NoError(t, err)
	assert.Equal(t, "moment", m["MPMS"]["moment"])

	_, err = LoadResultMappings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
