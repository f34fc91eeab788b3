package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifest_RecordsOutputs(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	m := New("", now)
	_, err := uuid.Parse(m.ID)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, m.Timestamp.Location())

	m.SetConfig([]byte("title: Test\n"))
	assert.Len(t, m.ConfigHash, 64)

	m.Add("index.html", "content/home.md", []byte("# Home\n"))
	m.Add("blog/index.html", "", nil)

	data, err := m.ToJSON()
	require.NoError(t, err)

	restored, err := FromJSON(data)
	require.NoError(t, err)
	require.Len(t, restored.Outputs, 2)
	assert.Equal(t, "blog/index.html", restored.Outputs[0].Path, "outputs sorted by path")
	assert.Empty(t, restored.Outputs[0].Fingerprint)
	assert.NotEmpty(t, restored.Outputs[1].Fingerprint)
}

func TestFingerprint_StableAndContentSensitive(t *testing.T) {
	a := Fingerprint([]byte("---\nweight: 1\n---\n# A\n"))
	assert.Equal(t, a, Fingerprint([]byte("---\nweight: 1\n---\n# A\n")))
	assert.NotEqual(t, a, Fingerprint([]byte("---\nweight: 2\n---\n# A\n")))
	assert.NotEqual(t, a, Fingerprint([]byte("---\nweight: 1\n---\n# B\n")))

	// Broken frontmatter still fingerprints the whole file.
	assert.NotEmpty(t, Fingerprint([]byte("---\nweight: 1\n# no close\n")))
}

func TestManifest_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	m := New("build-1", time.Now())
	m.Status = "success"
	require.NoError(t, m.Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	restored, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "build-1", restored.ID)
	assert.Equal(t, "success", restored.Status)
}
