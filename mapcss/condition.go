package mapcss

import "github.com/indoormapgo/indoormap/osm"

// Condition is a compiled boolean predicate over an element's tags. The
// MapCSS text grammar (exists(key), key=value, numeric/regex predicates)
// parses into these; this package only needs the compiled closure.
type Condition interface {
	// Compile interns any tag keys the condition needs against table. It
	// is called once by Style.Compile before any Matches call.
	Compile(table *osm.KeyTable)
	Matches(tags osm.Tags) bool
}

// ExistsCondition matches when key is present on the element, regardless
// of value.
type ExistsCondition struct {
	keyStr string
	key    osm.TagKey
}

// Exists builds a condition that matches elements carrying key.
func Exists(key string) *ExistsCondition { return &ExistsCondition{keyStr: key} }

func (c *ExistsCondition) Compile(table *osm.KeyTable) { c.key = table.Intern(c.keyStr) }
func (c *ExistsCondition) Matches(tags osm.Tags) bool  { return tags.Has(c.key) }

// EqualsCondition matches key=value exactly.
type EqualsCondition struct {
	keyStr, value string
	key           osm.TagKey
}

// Equals builds a condition that matches key=value.
func Equals(key, value string) *EqualsCondition { return &EqualsCondition{keyStr: key, value: value} }

func (c *EqualsCondition) Compile(table *osm.KeyTable) { c.key = table.Intern(c.keyStr) }
func (c *EqualsCondition) Matches(tags osm.Tags) bool {
	v, ok := tags.Get(c.key)
	return ok && v == c.value
}

// NotEqualsCondition matches key!=value, including when key is absent.
type NotEqualsCondition struct {
	keyStr, value string
	key           osm.TagKey
}

// NotEquals builds a condition that matches key!=value.
func NotEquals(key, value string) *NotEqualsCondition {
	return &NotEqualsCondition{keyStr: key, value: value}
}

func (c *NotEqualsCondition) Compile(table *osm.KeyTable) { c.key = table.Intern(c.keyStr) }
func (c *NotEqualsCondition) Matches(tags osm.Tags) bool {
	v, ok := tags.Get(c.key)
	return !ok || v != c.value
}

// PredicateCondition wraps a pre-compiled closure, the escape hatch for the
// numeric/regex predicates the MapCSS grammar supports but this evaluator
// does not parse — callers that build styles programmatically supply the
// closure directly.
type PredicateCondition struct {
	fn func(osm.Tags) bool
}

// Predicate builds a condition from an arbitrary tag predicate.
func Predicate(fn func(osm.Tags) bool) *PredicateCondition { return &PredicateCondition{fn: fn} }

func (c *PredicateCondition) Compile(*osm.KeyTable) {}
func (c *PredicateCondition) Matches(tags osm.Tags) bool { return c.fn(tags) }
