// Package loader is the seam through which OSM element data enters the
// pipeline. Decoding a wire format (.osm.pbf, .o5m, .osm.xml) is out of
// scope: a concrete decoder for one of those is an external collaborator
// that holds a *Reader and calls AddNode/AddWay/AddRelation as it decodes,
// the same way this package's own ReadJSON does for a small interchange
// format. This mirrors the original reader model's split between an
// abstract element sink and the concrete per-format readers that feed it.
package loader

import (
	"sync"

	"github.com/indoormapgo/indoormap/osm"
)

// Member names a relation member by its target's kind as a string rather
// than an osm.Kind, since a concrete decoder parses "node"/"way"/
// "relation" out of its own wire format and shouldn't need to know
// osm.Kind's encoding to call AddRelation.
type Member struct {
	ID   int64
	Kind string
	Role string
}

// Reader accepts decoded nodes, ways and relations and commits them to a
// DataSet, interning tags against the DataSet's own key table. A decoder
// that runs its own decode loop across goroutines may call the Add*
// methods concurrently: Reader serializes them with its own lock, since
// KeyTable.Intern is a plain map, not safe for concurrent use on its own.
type Reader struct {
	dataSet *osm.DataSet
	buffer  *MergeBuffer

	mu sync.Mutex
}

// NewReader returns a Reader that commits directly to ds.
func NewReader(ds *osm.DataSet) *Reader {
	return &Reader{dataSet: ds}
}

// SetMergeBuffer redirects subsequent Add* calls into buffer instead of
// the reader's DataSet. A multi-pass decoder that must resolve forward
// references — a relation naming a way its first pass hasn't reached yet —
// buffers every pass and merges once, via MergeBuffer.MergeInto.
func (r *Reader) SetMergeBuffer(buffer *MergeBuffer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buffer = buffer
}

// AddNode commits a decoded node.
func (r *Reader) AddNode(id int64, lat, lon float64, tags map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := osm.Node{ID: id, Coord: osm.NewCoordinate(lat, lon), Tags: r.internTags(tags)}
	if r.buffer != nil {
		r.buffer.Nodes = append(r.buffer.Nodes, n)
		return
	}
	r.dataSet.AddNode(n)
}

// AddWay commits a decoded way.
func (r *Reader) AddWay(id int64, refs []int64, tags map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w := osm.Way{ID: id, Refs: refs, Tags: r.internTags(tags)}
	if r.buffer != nil {
		r.buffer.Ways = append(r.buffer.Ways, w)
		return
	}
	r.dataSet.AddWay(w)
}

// AddRelation commits a decoded relation.
func (r *Reader) AddRelation(id int64, members []Member, tags map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]osm.Member, len(members))
	for i, m := range members {
		out[i] = osm.Member{ID: m.ID, Role: m.Role, Type: parseKind(m.Kind)}
	}
	rel := osm.Relation{ID: id, Members: out, Tags: r.internTags(tags)}
	if r.buffer != nil {
		r.buffer.Relations = append(r.buffer.Relations, rel)
		return
	}
	r.dataSet.AddRelation(rel)
}

// internTags must be called with r.mu held: KeyTable.Intern is a plain map.
func (r *Reader) internTags(tags map[string]string) osm.Tags {
	if len(tags) == 0 {
		return nil
	}
	out := make(osm.Tags, 0, len(tags))
	for k, v := range tags {
		out = append(out, osm.Tag{Key: r.dataSet.Keys.Intern(k), Value: v})
	}
	out.SortByKey()
	return out
}

func parseKind(s string) osm.Kind {
	switch s {
	case "node":
		return osm.KindNode
	case "way":
		return osm.KindWay
	case "relation":
		return osm.KindRelation
	default:
		return osm.KindNull
	}
}

// MergeBuffer collects elements redirected by SetMergeBuffer so a
// multi-pass decoder commits them only once every pass has resolved its
// forward references.
type MergeBuffer struct {
	Nodes     []osm.Node
	Ways      []osm.Way
	Relations []osm.Relation
}

// MergeInto appends the buffer's elements into ds and finalizes it.
func (b *MergeBuffer) MergeInto(ds *osm.DataSet) {
	for _, n := range b.Nodes {
		ds.AddNode(n)
	}
	for _, w := range b.Ways {
		ds.AddWay(w)
	}
	for _, rel := range b.Relations {
		ds.AddRelation(rel)
	}
	ds.Finalize()
}
