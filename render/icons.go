package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"sync"
)

// newIconReader decompresses a zlib-compressed icon atlas stream. The dual
// build-tag split (icons_cgo.go / icons_nocgo.go) mirrors the teacher's own
// zlib_cgo.go: a cgo build links czlib for speed, a non-cgo build falls back
// to a pure-Go zlib implementation so cross-compiling without a C toolchain
// still works.
var newIconReader func(io.Reader) (io.ReadCloser, error)

var (
	iconAtlasOnce sync.Once
	iconAtlas     image.Image
	iconAtlasErr  error
	iconRects     map[string]image.Rectangle
)

// LoadIconAtlas decompresses compressed (zlib) and decodes it as a PNG icon
// atlas, caching the result for IconRect/IconAtlas. rects names each icon's
// sub-rectangle within the decoded image; callers that ship their own atlas
// supply both together.
func LoadIconAtlas(compressed []byte, rects map[string]image.Rectangle) error {
	var err error
	iconAtlasOnce.Do(func() {
		iconAtlas, err = decodeIconAtlas(compressed)
		iconRects = rects
	})
	if err != nil {
		iconAtlasErr = err
	}
	if iconAtlasErr != nil {
		return iconAtlasErr
	}
	return err
}

func decodeIconAtlas(compressed []byte) (image.Image, error) {
	if newIconReader == nil {
		return nil, fmt.Errorf("render: no zlib reader registered for this build")
	}
	zr, err := newIconReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("render: decompress icon atlas: %w", err)
	}
	defer zr.Close()
	img, err := png.Decode(zr)
	if err != nil {
		return nil, fmt.Errorf("render: decode icon atlas png: %w", err)
	}
	return img, nil
}

// IconAtlas returns the decoded icon atlas image, or nil if LoadIconAtlas
// has not been called or failed.
func IconAtlas() image.Image { return iconAtlas }

// IconRect returns name's sub-rectangle within IconAtlas, if known.
func IconRect(name string) (image.Rectangle, bool) {
	r, ok := iconRects[name]
	return r, ok
}
