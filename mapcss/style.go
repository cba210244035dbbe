package mapcss

import (
	"errors"

	"github.com/indoormapgo/indoormap/osm"
)

// ErrStyleNotCompiled is returned by Evaluate/EvaluateCanvas when called
// before Compile.
var ErrStyleNotCompiled = errors.New("mapcss: style not compiled")

// ErrParse is the sentinel style-text parse failure named by the error
// handling design; this package never produces it itself since the MapCSS
// text grammar is out of scope, but callers that do parse style text (or
// the gzip-embedded serialized rule tables) should wrap their failures
// with it so downstream error handling is uniform.
var ErrParse = errors.New("mapcss: parse error")

// Rule is one compiled MapCSS rule: a selector set plus the declarations
// applied when it matches.
type Rule struct {
	Selector Selector
	// LayerSelector names the result layer declarations go into; "" is
	// the null/default layer.
	LayerSelector string
	Declarations  []Declaration
}

// CanvasRule is a rule matched by EvaluateCanvas, which ignores
// per-element selectors entirely — only its zoom range applies.
type CanvasRule struct {
	MinZoom, MaxZoom int
	Declarations     []Declaration
}

// Style is a compiled sequence of rules plus a separate canvas rule list.
// A Style must be compiled against the target DataSet before Evaluate or
// EvaluateCanvas will run.
type Style struct {
	Rules       []Rule
	CanvasRules []CanvasRule

	compiled bool
	areaKey  osm.TagKey
	typeKey  osm.TagKey
}

// NewStyle returns an empty, uncompiled style.
func NewStyle() *Style { return &Style{} }

// AddRule appends an element rule.
func (s *Style) AddRule(r Rule) { s.Rules = append(s.Rules, r) }

// AddCanvasRule appends a canvas rule.
func (s *Style) AddCanvasRule(r CanvasRule) { s.CanvasRules = append(s.CanvasRules, r) }

// Compile interns every condition's tag key against ds's key table and
// pre-resolves the area/type disambiguation keys. A style not compiled
// against the active data set is invalid input to Evaluate.
func (s *Style) Compile(ds *osm.DataSet) error {
	s.areaKey = ds.Keys.Intern("area")
	s.typeKey = ds.Keys.Intern("type")
	for i := range s.Rules {
		s.Rules[i].Selector.Compile(ds.Keys)
	}
	s.compiled = true
	return nil
}

// AreaKey returns the interned "area" tag key resolved at Compile time, for
// callers (ClassifyObjectType) that need it before Evaluate.
func (s *Style) AreaKey() osm.TagKey { return s.areaKey }

// Evaluate tests every rule's selector against state, in rule order, and
// applies matching declarations into result with last-write-wins per
// property within each result layer. Class declarations are write-then-
// test: a class set by an earlier rule in this same call is visible to
// later rules' RequireClasses checks.
func (s *Style) Evaluate(state *State, result *Result) error {
	if !s.compiled {
		return ErrStyleNotCompiled
	}
	result.Reset()
	for _, rule := range s.Rules {
		if !rule.Selector.Matches(state) {
			continue
		}
		for _, d := range rule.Declarations {
			switch d.Type {
			case ClassDeclaration:
				state.setClass(d.Name, d.Set)
			case PropertyDeclaration:
				result.layerFor(rule.LayerSelector).set(d)
			case TagDeclaration:
				// Synthetic tag declarations would only matter to a
				// condition grammar that can test them, which is out of
				// scope; the declaration has no further effect here.
			}
		}
	}
	return nil
}

// EvaluateCanvas applies every canvas rule whose zoom range covers zoom,
// ignoring per-element selectors entirely, and writes into result's
// default layer.
func (s *Style) EvaluateCanvas(zoom int, result *Result) error {
	if !s.compiled {
		return ErrStyleNotCompiled
	}
	result.Reset()
	for _, cr := range s.CanvasRules {
		if cr.MinZoom != 0 && zoom < cr.MinZoom {
			continue
		}
		if cr.MaxZoom != 0 && zoom > cr.MaxZoom {
			continue
		}
		for _, d := range cr.Declarations {
			if d.Type == PropertyDeclaration {
				result.layerFor("").set(d)
			}
		}
	}
	return nil
}
