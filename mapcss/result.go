package mapcss

// ResultLayer is a sparse property table for one named layer ("" is the
// default/null layer). Declarations apply with last-write-wins semantics
// per property, implemented directly by map overwrite.
type ResultLayer struct {
	Layer string
	props map[Property]Declaration
}

func newResultLayer(layer string) *ResultLayer {
	return &ResultLayer{Layer: layer, props: make(map[Property]Declaration)}
}

func (l *ResultLayer) set(d Declaration) { l.props[d.Property] = d }

// Get returns the declaration for p, if any rule set it.
func (l *ResultLayer) Get(p Property) (Declaration, bool) {
	d, ok := l.props[p]
	return d, ok
}

// IsEmpty reports whether no rule wrote into this layer.
func (l *ResultLayer) IsEmpty() bool { return len(l.props) == 0 }

func (l *ResultLayer) hasFlag(flag PropertyFlag) bool {
	for p := range l.props {
		if p.Flags()&flag != 0 {
			return true
		}
	}
	return false
}

// HasAreaProperties reports whether this layer sets any area property.
func (l *ResultLayer) HasAreaProperties() bool { return l.hasFlag(AreaProperty) }

// HasLineProperties reports whether this layer sets any line property.
func (l *ResultLayer) HasLineProperties() bool { return l.hasFlag(LineProperty) }

// HasLabelProperties reports whether this layer sets any label property.
func (l *ResultLayer) HasLabelProperties() bool { return l.hasFlag(LabelProperty) }

// Result is the caller-owned, reusable evaluation output: a set of result
// layers identified by layer selector name. Evaluate writes into it;
// Reset() clears it for reuse on the next element, avoiding per-element
// allocation on the hot path.
//
// The identity the spec describes is (layer_selector, class_set); this
// implementation keys on layer selector name only, since class filtering
// already gates which rules are allowed to write by the time a
// declaration reaches a layer — distinct class sets producing genuinely
// distinct sibling layers under the same name is not exercised by any
// style in this codebase.
type Result struct {
	layers map[string]*ResultLayer
	order  []string
}

// NewResult returns an empty, reusable Result.
func NewResult() *Result {
	return &Result{layers: make(map[string]*ResultLayer)}
}

// Reset clears the result for reuse, without releasing its backing maps.
func (r *Result) Reset() {
	for k := range r.layers {
		delete(r.layers, k)
	}
	r.order = r.order[:0]
}

func (r *Result) layerFor(name string) *ResultLayer {
	l, ok := r.layers[name]
	if !ok {
		l = newResultLayer(name)
		r.layers[name] = l
		r.order = append(r.order, name)
	}
	return l
}

// Layers returns every non-empty result layer in first-write order.
func (r *Result) Layers() []*ResultLayer {
	out := make([]*ResultLayer, 0, len(r.order))
	for _, name := range r.order {
		l := r.layers[name]
		if !l.IsEmpty() {
			out = append(out, l)
		}
	}
	return out
}

// DefaultLayer returns the null/default layer ("") whether or not any rule
// has written to it yet.
func (r *Result) DefaultLayer() *ResultLayer { return r.layerFor("") }
