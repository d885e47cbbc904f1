package curriculum

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte(`
topics:
  - {id: one, name: One, tier: easy}
  - {id: two, name: Two, tier: medium}
  - {id: three, name: Three, tier: hard}
`)
	m, err := Parse(data)
	require.NoError(t, err)

	topic, err := m.Topic("two")
	require.NoError(t, err)
	assert.Equal(t, Medium, topic.Tier)
	assert.Equal(t, "Two", topic.Name)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`topics: [{id: one, tier: easy}]`))
	assert.Error(t, err)

	_, err = Parse([]byte(`topics: {`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curriculum.yaml")
	require.NoError(t, os.WriteFile(path, defaultYAML, 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.True(t, m.Has("conditionals"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
