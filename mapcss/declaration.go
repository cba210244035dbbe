package mapcss

import "image/color"

// DeclarationType distinguishes the three declaration shapes a MapCSS rule
// body can hold.
type DeclarationType int

const (
	// PropertyDeclaration sets a rendering property (line width, fill
	// color, label text, ...).
	PropertyDeclaration DeclarationType = iota
	// TagDeclaration sets a synthetic tag value consulted by later rules
	// within the same evaluation (used for conditional overrides).
	TagDeclaration
	// ClassDeclaration sets or clears a class flag other selectors in the
	// same style can require, write-then-test within one evaluation.
	ClassDeclaration
)

// Declaration is one property/tag/class assignment inside a rule body. The
// text grammar that parses "width: 2; color: #fff;" into these is out of
// scope; styles construct Declarations directly.
type Declaration struct {
	Type     DeclarationType
	Property Property
	Unit     Unit
	Name     string // class or synthetic tag name, for Tag/ClassDeclaration
	Set      bool   // class on/off, for ClassDeclaration

	number float64
	text   string
	hasNum bool
	hasCol bool
	col    color.RGBA
}

// NumberDecl builds a numeric property declaration (widths, opacities,
// z-index, radii).
func NumberDecl(p Property, v float64, unit Unit) Declaration {
	return Declaration{Type: PropertyDeclaration, Property: p, Unit: unit, number: v, hasNum: true}
}

// ColorDecl builds a color property declaration.
func ColorDecl(p Property, c color.RGBA) Declaration {
	return Declaration{Type: PropertyDeclaration, Property: p, col: c, hasCol: true}
}

// StringDecl builds a string property declaration (text, image paths, font
// family names, dash patterns serialized as text, ...).
func StringDecl(p Property, s string) Declaration {
	return Declaration{Type: PropertyDeclaration, Property: p, text: s}
}

// BoolDecl builds a boolean property declaration (allow-text-overlap etc).
func BoolDecl(p Property, b bool) Declaration {
	v := 0.0
	if b {
		v = 1.0
	}
	return Declaration{Type: PropertyDeclaration, Property: p, number: v, hasNum: true}
}

// ClassDecl builds a class set/clear declaration.
func ClassDecl(name string, set bool) Declaration {
	return Declaration{Type: ClassDeclaration, Name: name, Set: set}
}

// TagDecl builds a synthetic tag declaration.
func TagDecl(name, value string) Declaration {
	return Declaration{Type: TagDeclaration, Name: name, text: value}
}

// Number returns the declaration's numeric value.
func (d Declaration) Number() (float64, bool) { return d.number, d.hasNum }

// ColorRGBA returns the declaration's color value.
func (d Declaration) ColorRGBA() (color.RGBA, bool) { return d.col, d.hasCol }

// Text returns the declaration's string value.
func (d Declaration) Text() (string, bool) { return d.text, d.text != "" || d.Type == TagDeclaration }

// Bool returns the declaration's numeric value interpreted as a boolean.
func (d Declaration) Bool() (bool, bool) { return d.number != 0, d.hasNum }
