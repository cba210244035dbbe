package mapcss

import (
	"bytes"
	_ "embed"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
)

//go:embed assets/icon_tags.gz
var iconTagsAsset []byte

// Luminance is the host palette's overall brightness, used to pick between
// a style's light and dark variant when the caller asks for "default".
type Luminance float64

// IsDark reports whether this luminance calls for a dark variant.
func (l Luminance) IsDark() bool { return float64(l) < 0.5 }

// LoadNamed resolves one of the well-known style names (breeze-light,
// breeze-dark, diagnostic, default) to a programmatically built Style. The
// MapCSS text grammar is out of scope, so these are Go literals rather
// than parsed from .mapcss source; "default" picks light or dark by
// palette luminance.
func LoadNamed(name string, palette Luminance) (*Style, error) {
	var s *Style
	switch name {
	case "breeze-light":
		s = breezeStyle(false)
	case "breeze-dark":
		s = breezeStyle(true)
	case "diagnostic":
		s = diagnosticStyle()
	case "default":
		s = breezeStyle(palette.IsDark())
	default:
		return nil, fmt.Errorf("mapcss: unknown style name %q", name)
	}
	tags, err := loadIconTagRules()
	if err != nil {
		return nil, err
	}
	for _, r := range tags {
		s.AddRule(r)
	}
	return s, nil
}

// loadIconTagRules decompresses the embedded default icon-tag table
// (assets/icon_tags.gz) and turns each "key=value:icon" line into a
// node-type rule assigning that icon-image, so point amenities (elevators,
// stairs, escalators, toilets) pick up a rendered icon without every named
// style having to spell the mapping out itself.
func loadIconTagRules() ([]Rule, error) {
	raw, err := DecompressAsset(bytes.NewReader(iconTagsAsset))
	if err != nil {
		return nil, fmt.Errorf("mapcss: load icon tag table: %w", err)
	}
	var rules []Rule
	for _, line := range strings.Split(strings.TrimSpace(string(raw)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tag, icon, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key, value, ok := strings.Cut(tag, "=")
		if !ok {
			continue
		}
		rules = append(rules, Rule{
			Selector:     &BasicSelector{ObjectType: NodeType, Conditions: []Condition{Equals(key, value)}},
			Declarations: []Declaration{StringDecl(IconImage, icon)},
		})
	}
	return rules, nil
}

// DecompressAsset gzip-decompresses an embedded style asset (e.g. an
// optional rule-table override shipped alongside the binary), the
// concrete use of klauspost/compress/gzip this package wires in.
func DecompressAsset(r io.Reader) ([]byte, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("mapcss: decompress asset: %w", err)
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// CompressAsset gzip-compresses data, the write-side counterpart used by
// tooling that packages a style asset for embedding.
func CompressAsset(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func hexColor(hex string, alpha uint8) color.RGBA {
	var r, g, b uint8
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return color.RGBA{R: r, G: g, B: b, A: alpha}
}

// breezeStyle builds the Breeze-family default indoor style: rooms filled
// by indoor=room/area, walls drawn as extrude-capable lines, corridors
// stroked thin, labels from name, with a light or dark palette.
func breezeStyle(dark bool) *Style {
	s := NewStyle()

	bg := hexColor("232629", 255)
	fg := hexColor("fcfcfc", 255)
	roomFill := hexColor("93cee9", 60)
	wallColor := hexColor("232629", 255)
	corridorColor := hexColor("bdc3c7", 255)
	if !dark {
		bg = hexColor("ffffff", 255)
		fg = hexColor("232629", 255)
		roomFill = hexColor("93cee9", 80)
		wallColor = hexColor("7f8c8d", 255)
	}

	s.AddCanvasRule(CanvasRule{Declarations: []Declaration{
		ColorDecl(FillColor, bg),
		ColorDecl(TextColor, fg),
	}})

	s.AddRule(Rule{
		Selector: &BasicSelector{ObjectType: AreaType, Conditions: []Condition{Exists("indoor")}},
		Declarations: []Declaration{
			ColorDecl(FillColor, roomFill),
			NumberDecl(FillOpacity, float64(roomFill.A)/255, Pixels),
			NumberDecl(ZIndex, 10, Pixels),
		},
	})
	s.AddRule(Rule{
		Selector: &BasicSelector{ObjectType: LineType, Conditions: []Condition{Exists("wall")}},
		Declarations: []Declaration{
			ColorDecl(Color, wallColor),
			NumberDecl(Width, 0.2, Meters),
			NumberDecl(ZIndex, 20, Pixels),
		},
	})
	s.AddRule(Rule{
		Selector: &BasicSelector{ObjectType: LineType, Conditions: []Condition{Equals("highway", "corridor")}},
		Declarations: []Declaration{
			ColorDecl(Color, corridorColor),
			NumberDecl(Width, 1.2, Meters),
			NumberDecl(ZIndex, 15, Pixels),
		},
	})
	s.AddRule(Rule{
		Selector: &BasicSelector{ObjectType: AreaType, Conditions: []Condition{Exists("name")}},
		Declarations: []Declaration{
			StringDecl(Text, "{name}"),
			NumberDecl(FontSize, 11, Pixels),
			ColorDecl(TextColor, fg),
			NumberDecl(ZIndex, 50, Pixels),
		},
	})
	return s
}

// diagnosticStyle gives every area and line a distinct saturated color by
// object type, for visually auditing geometry extraction rather than
// producing a presentable map.
func diagnosticStyle() *Style {
	s := NewStyle()
	s.AddCanvasRule(CanvasRule{Declarations: []Declaration{
		ColorDecl(FillColor, color.RGBA{R: 0, G: 0, B: 0, A: 255}),
	}})
	s.AddRule(Rule{
		Selector:     &BasicSelector{ObjectType: AreaType},
		Declarations: []Declaration{ColorDecl(FillColor, color.RGBA{R: 255, A: 120})},
	})
	s.AddRule(Rule{
		Selector:     &BasicSelector{ObjectType: LineType},
		Declarations: []Declaration{ColorDecl(Color, color.RGBA{G: 255, A: 255}), NumberDecl(Width, 1, Pixels)},
	})
	s.AddRule(Rule{
		Selector:     &BasicSelector{ObjectType: NodeType},
		Declarations: []Declaration{ColorDecl(IconColor, color.RGBA{B: 255, A: 255})},
	})
	return s
}
