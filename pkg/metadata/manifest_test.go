package metadata

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifest_MarshalUnmarshal(t *testing.T) {
	m := Metadata{OriginalName: "report.pdf", Width: 640, Height: 360, OriginalSizeBytes: 1000000}
	mf := NewManifest(m, Digest([]byte("hello")))
	mf.Codec = "ffv1"
	mf.FPS = 24

	data, err := mf.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "sha256: 2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824")
	assert.Contains(t, string(data), "frames: 2")

	got, err := UnmarshalManifest(data)
	require.NoError(t, err)
	assert.Equal(t, m, got.Metadata())
	assert.Equal(t, "ffv1", got.Codec)
	assert.NoError(t, got.Check(m))
}

func TestManifest_VerifyAndCheck(t *testing.T) {
	m := Metadata{OriginalName: "a", Width: 2, Height: 1, OriginalSizeBytes: 5}
	mf := NewManifest(m, Digest([]byte{1, 2, 3}))

	assert.NoError(t, mf.Verify(Digest([]byte{1, 2, 3})))
	assert.ErrorIs(t, mf.Verify(Digest([]byte{1, 2, 4})), ErrChecksumMismatch)

	other := m
	other.OriginalSizeBytes = 6
	assert.ErrorIs(t, mf.Check(other), ErrManifestMismatch)

	mf.SHA256 = ""
	assert.NoError(t, mf.Verify("anything"))
}

func TestUnmarshalManifest_Errors(t *testing.T) {
	_, err := UnmarshalManifest([]byte("version: 99\n"))
	assert.Error(t, err)

	_, err = UnmarshalManifest([]byte("version: [\n"))
	assert.Error(t, err)
}

func TestManifestPath(t *testing.T) {
	assert.Equal(t, filepath.Join("encoded", "a__2x1__5.manifest.yaml"), ManifestPath("encoded", "a__2x1__5"))
}

func TestNewDigest_MatchesDigest(t *testing.T) {
	h := NewDigest()
	h.Write([]byte("hel"))
	h.Write([]byte("lo"))
	assert.Equal(t, Digest([]byte("hello")), SumHex(h))
}
