package mocks

import (
	"bytes"
	"fmt"
	"image"

	"github.com/user/bytereel/pkg/framecodec"
	"github.com/user/bytereel/pkg/geometry"
	"github.com/user/bytereel/pkg/ports"
)

// ImageCodec is a mock implementation of ports.ImageCodec.
// By default it stores frames as "WxH:" followed by raw RGB bytes.
type ImageCodec struct {
	EncodeFunc func(img image.Image, format ports.ImageFormat) ([]byte, error)
	DecodeFunc func(data []byte) (image.Image, error)
}

func (m *ImageCodec) Encode(img image.Image, format ports.ImageFormat) ([]byte, error) {
	if m.EncodeFunc != nil {
		return m.EncodeFunc(img, format)
	}
	f, err := framecodec.FromImage(img)
	if err != nil {
		return nil, err
	}
	header := fmt.Sprintf("%dx%d:", f.Width, f.Height)
	return append([]byte(header), f.Pix...), nil
}

func (m *ImageCodec) Decode(data []byte) (image.Image, error) {
	if m.DecodeFunc != nil {
		return m.DecodeFunc(data)
	}
	i := bytes.IndexByte(data, ':')
	if i < 0 {
		return nil, fmt.Errorf("mock decode: missing header")
	}
	g, err := geometry.Parse(string(data[:i]))
	if err != nil {
		return nil, fmt.Errorf("mock decode: %w", err)
	}
	pix := data[i+1:]
	if len(pix) != g.Capacity() {
		return nil, fmt.Errorf("mock decode: %d bytes for %s", len(pix), g)
	}
	return framecodec.Frame{Width: g.Width, Height: g.Height, Pix: append([]byte(nil), pix...)}, nil
}

var _ ports.ImageCodec = (*ImageCodec)(nil)
