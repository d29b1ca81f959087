package bytereel

import (
	"path/filepath"
	"strings"

	"github.com/user/bytereel/pkg/metadata"
	"github.com/user/bytereel/pkg/ports"
)

// Entry is one encoded output found by List.
type Entry struct {
	Path     string
	Token    string
	Metadata metadata.Metadata
}

// List returns the encoded outputs in dir whose names parse as tokens.
// Manifests and staging files are skipped.
func List(fs ports.FileSystem, dir string, tokens *metadata.TokenCodec) ([]Entry, error) {
	names, err := fs.List(dir)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, name := range names {
		if strings.HasSuffix(name, ".partial") || strings.HasSuffix(name, metadata.ManifestSuffix) {
			continue
		}
		path := filepath.Join(dir, name)
		token := tokens.TokenFromPath(path)
		meta, err := tokens.DecodeToken(token)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Path: path, Token: token, Metadata: meta})
	}
	return entries, nil
}
