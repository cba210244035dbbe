package render

import (
	_ "embed"
	"image"
)

//go:embed assets/icons.atlas.zlib
var defaultIconAtlas []byte

// defaultIconRects locates each named icon within the decoded default atlas
// (assets/icons.atlas.zlib, four 32x32 cells side by side).
var defaultIconRects = map[string]image.Rectangle{
	"elevator":  image.Rect(0, 0, 32, 32),
	"stairs":    image.Rect(32, 0, 64, 32),
	"escalator": image.Rect(64, 0, 96, 32),
	"toilets":   image.Rect(96, 0, 128, 32),
}

// LoadDefaultIconAtlas decompresses and decodes the embedded default icon
// atlas, the same way LoadIconAtlas would for a caller-supplied one. Called
// from cmd/indoormap's render setup so IconAtlas/IconRect resolve out of the
// box without requiring every deployment to ship its own atlas asset.
func LoadDefaultIconAtlas() error {
	return LoadIconAtlas(defaultIconAtlas, defaultIconRects)
}
