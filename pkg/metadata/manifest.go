package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ManifestVersion is the current manifest schema version.
const ManifestVersion = 1

// ManifestSuffix is appended to the token to form the sidecar file name.
const ManifestSuffix = ".manifest.yaml"

// Manifest is an optional sidecar written next to an encoded video.
// The token alone is enough to decode; the manifest adds a content digest.
type Manifest struct {
	Version   int       `yaml:"version"`
	JobID     string    `yaml:"job_id,omitempty"`
	Name      string    `yaml:"name"`
	Width     int       `yaml:"width"`
	Height    int       `yaml:"height"`
	SizeBytes int64     `yaml:"size_bytes"`
	Frames    int       `yaml:"frames"`
	Codec     string    `yaml:"codec,omitempty"`
	FPS       float64   `yaml:"fps,omitempty"`
	SHA256    string    `yaml:"sha256"`
	CreatedAt time.Time `yaml:"created_at"`
}

// NewManifest builds a manifest for m with the given hex digest.
func NewManifest(m Metadata, digest string) *Manifest {
	return &Manifest{
		Version:   ManifestVersion,
		Name:      m.OriginalName,
		Width:     m.Width,
		Height:    m.Height,
		SizeBytes: m.OriginalSizeBytes,
		Frames:    m.FrameCount(),
		SHA256:    digest,
		CreatedAt: time.Now().UTC(),
	}
}

// Metadata returns the metadata recorded in the manifest.
func (mf *Manifest) Metadata() Metadata {
	return Metadata{
		OriginalName:      mf.Name,
		Width:             mf.Width,
		Height:            mf.Height,
		OriginalSizeBytes: mf.SizeBytes,
	}
}

// Check returns ErrManifestMismatch when the manifest describes a different
// geometry or size than m. Names are not compared since tokens sanitize them.
func (mf *Manifest) Check(m Metadata) error {
	if mf.Width != m.Width || mf.Height != m.Height || mf.SizeBytes != m.OriginalSizeBytes {
		return fmt.Errorf("%w: manifest %dx%d/%d bytes, token %dx%d/%d bytes",
			ErrManifestMismatch, mf.Width, mf.Height, mf.SizeBytes, m.Width, m.Height, m.OriginalSizeBytes)
	}
	return nil
}

// Verify compares digest with the recorded SHA-256.
func (mf *Manifest) Verify(digest string) error {
	if mf.SHA256 == "" {
		return nil
	}
	if !strings.EqualFold(mf.SHA256, digest) {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, mf.SHA256, digest)
	}
	return nil
}

// Marshal encodes the manifest as YAML.
func (mf *Manifest) Marshal() ([]byte, error) {
	return yaml.Marshal(mf)
}

// UnmarshalManifest decodes a YAML manifest.
func UnmarshalManifest(data []byte) (*Manifest, error) {
	var mf Manifest
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if mf.Version != ManifestVersion {
		return nil, fmt.Errorf("parse manifest: unsupported version %d", mf.Version)
	}
	return &mf, nil
}

// ManifestPath returns the sidecar path for a token stored in dir.
func ManifestPath(dir, token string) string {
	return filepath.Join(dir, token+ManifestSuffix)
}

// Digest returns the hex SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NewDigest returns a streaming SHA-256 hash for use with SumHex.
func NewDigest() hash.Hash {
	return sha256.New()
}

// SumHex returns the hex digest of h. It matches Digest for the same input.
func SumHex(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))
}
