package metadata

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/user/bytereel/pkg/geometry"
)

// DefaultDelimiter separates token fields. It matches the file names produced
// by earlier releases ("name__WxH__size.mkv").
const DefaultDelimiter = "__"

// TokenCodec converts Metadata to and from "<name><delim><w>x<h><delim><size>".
type TokenCodec struct {
	delim string
}

// NewTokenCodec creates a codec for the given two-character delimiter.
// The delimiter may not contain digits, 'x', or path separators, so the
// resolution and size fields can never contain it.
func NewTokenCodec(delim string) (*TokenCodec, error) {
	if utf8.RuneCountInString(delim) != 2 {
		return nil, fmt.Errorf("%w: %q must be two characters", ErrInvalidDelimiter, delim)
	}
	for _, r := range delim {
		if unicode.IsDigit(r) || r == 'x' || r == 'X' || r == '/' || r == '\\' || unicode.IsSpace(r) {
			return nil, fmt.Errorf("%w: %q contains %q", ErrInvalidDelimiter, delim, r)
		}
	}
	return &TokenCodec{delim: delim}, nil
}

// DefaultTokenCodec returns a codec using DefaultDelimiter.
func DefaultTokenCodec() *TokenCodec {
	return &TokenCodec{delim: DefaultDelimiter}
}

// Delimiter returns the field delimiter.
func (c *TokenCodec) Delimiter() string {
	return c.delim
}

// Sanitize makes name safe to embed in a token. Path separators of the host
// become '_' and the delimiter is collapsed until it no longer occurs. A
// backslash is an ordinary name character on POSIX hosts and is kept.
func (c *TokenCodec) Sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == filepath.Separator {
			return '_'
		}
		return r
	}, name)
	short := c.delim[:utf8.RuneLen([]rune(c.delim)[0])]
	for strings.Contains(name, c.delim) {
		name = strings.ReplaceAll(name, c.delim, short)
	}
	return name
}

// EncodeToken formats m as a token. The name is sanitized first.
func (c *TokenCodec) EncodeToken(m Metadata) (string, error) {
	name := c.Sanitize(m.OriginalName)
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("%w: empty original name", ErrMalformedToken)
	}
	if err := m.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteString(c.delim)
	b.WriteString(strconv.Itoa(m.Width))
	b.WriteByte('x')
	b.WriteString(strconv.Itoa(m.Height))
	b.WriteString(c.delim)
	b.WriteString(strconv.FormatInt(m.OriginalSizeBytes, 10))
	return b.String(), nil
}

// DecodeToken parses a token produced by EncodeToken.
// Fields are split from the right, so a name ending in a delimiter
// character still parses.
func (c *TokenCodec) DecodeToken(token string) (Metadata, error) {
	i := strings.LastIndex(token, c.delim)
	if i < 0 {
		return Metadata{}, fmt.Errorf("%w: %q has no %q delimiter", ErrMalformedToken, token, c.delim)
	}
	sizePart := token[i+len(c.delim):]
	rest := token[:i]

	j := strings.LastIndex(rest, c.delim)
	if j < 0 {
		return Metadata{}, fmt.Errorf("%w: %q has 2 parts, want 3", ErrMalformedToken, token)
	}
	resPart := rest[j+len(c.delim):]
	name := rest[:j]

	if name == "" {
		return Metadata{}, fmt.Errorf("%w: %q has an empty name", ErrMalformedToken, token)
	}
	if strings.Contains(name, c.delim) {
		return Metadata{}, fmt.Errorf("%w: %q has more than 3 parts", ErrMalformedToken, token)
	}
	if strings.Contains(name, "/") || filepath.Base(name) != name || name == "." || name == ".." {
		return Metadata{}, fmt.Errorf("%w: %q is not a plain file name", ErrMalformedToken, name)
	}

	width, height, err := parseResolution(resPart)
	if err != nil {
		return Metadata{}, err
	}

	size, err := strconv.ParseUint(sizePart, 10, 63)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: size %q is not a non-negative integer", ErrMalformedToken, sizePart)
	}

	return Metadata{
		OriginalName:      name,
		Width:             width,
		Height:            height,
		OriginalSizeBytes: int64(size),
	}, nil
}

func parseResolution(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("%w: resolution %q is not WxH", ErrMalformedToken, s)
	}
	w, err := strconv.ParseUint(ws, 10, 31)
	if err != nil || w == 0 {
		return 0, 0, fmt.Errorf("%w: width %q", ErrMalformedToken, ws)
	}
	h, err := strconv.ParseUint(hs, 10, 31)
	if err != nil || h == 0 {
		return 0, 0, fmt.Errorf("%w: height %q", ErrMalformedToken, hs)
	}
	g, err := geometry.New(int(w), int(h))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return g.Width, g.Height, nil
}

// TokenFromPath returns the token carried by an encoded output path: the
// base name with any container extension removed. A frame directory is
// named by the bare token.
func (c *TokenCodec) TokenFromPath(path string) string {
	base := filepath.Base(filepath.Clean(path))
	ext := filepath.Ext(base)
	if ext == "" || strings.Contains(ext, c.delim) {
		return base
	}
	if strings.Trim(ext[1:], "0123456789") == "" {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// EncodeToken formats m with the default delimiter.
func EncodeToken(m Metadata) (string, error) {
	return DefaultTokenCodec().EncodeToken(m)
}

// DecodeToken parses token with the default delimiter.
func DecodeToken(token string) (Metadata, error) {
	return DefaultTokenCodec().DecodeToken(token)
}
