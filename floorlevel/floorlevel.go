// Package floorlevel surfaces the active MapData's available floors and, for
// a reference element such as an elevator or stairwell, the set of levels it
// connects — the UI-facing model the Scene Controller and Navmesh Builder
// both sit behind.
package floorlevel

import (
	"sort"
	"strconv"

	"github.com/indoormapgo/indoormap/level"
	"github.com/indoormapgo/indoormap/osm"
)

// Model exposes the ordered list of full levels present in a MapData.
type Model struct {
	Data *level.MapData
}

// NewModel returns a Model over data.
func NewModel(data *level.MapData) *Model { return &Model{Data: data} }

// Levels returns every full level with at least one element, ascending.
func (m *Model) Levels() []level.MapLevel {
	var out []level.MapLevel
	for _, l := range m.Data.Levels.Levels() {
		if level.IsFullLevel(l) {
			out = append(out, l)
		}
	}
	return out
}

// ChangeModel computes the set of levels a reference element (elevator,
// stairwell, staircase) connects, combining building:levels/min_level/
// levels:underground ranges with the element's own level/repeat_on tags.
type ChangeModel struct {
	Element      osm.Element
	CurrentLevel level.MapLevel

	levels []level.MapLevel
}

// NewChangeModel builds a ChangeModel for e against the current floor. It
// returns a model with an empty level set if e is not a recognized
// level-change element.
func NewChangeModel(e osm.Element, current level.MapLevel, table *osm.KeyTable) *ChangeModel {
	cm := &ChangeModel{Element: e, CurrentLevel: current}
	if !isLevelChangeElement(e, table) {
		return cm
	}

	levels := map[level.MapLevel]struct{}{}

	if n, ok := uintTag(e, "building:levels", table); ok && n > 0 {
		minLevel := uintTagOr(e, "building:min_level", table, 0)
		for i := minLevel; i < n; i++ {
			levels[level.MapLevel(i)*10] = struct{}{}
		}
	}
	if n, ok := uintTag(e, "building:levels:underground", table); ok {
		for i := uint64(0); i < n; i++ {
			levels[-level.MapLevel(i+1)*10] = struct{}{}
		}
	}

	for _, raw := range rawLevelValues(e, table) {
		for _, l := range level.ParseLevels(raw) {
			if level.IsFullLevel(l) {
				levels[l] = struct{}{}
			} else {
				levels[level.FullLevelBelow(l)] = struct{}{}
				levels[level.FullLevelAbove(l)] = struct{}{}
			}
		}
	}

	for l := range levels {
		cm.levels = append(cm.levels, l)
	}
	sort.Slice(cm.levels, func(i, j int) bool { return cm.levels[i] < cm.levels[j] })
	return cm
}

// Levels returns the connected level set, ascending, deduplicated.
func (cm *ChangeModel) Levels() []level.MapLevel { return cm.levels }

// HasSingleLevelChange reports whether exactly two levels are connected and
// one of them is the current level — the "go to other" shortcut case.
func (cm *ChangeModel) HasSingleLevelChange() bool {
	if len(cm.levels) != 2 {
		return false
	}
	return cm.levels[0] == cm.CurrentLevel || cm.levels[1] == cm.CurrentLevel
}

// DestinationLevel returns the other level when HasSingleLevelChange holds,
// or 0 otherwise.
func (cm *ChangeModel) DestinationLevel() level.MapLevel {
	if !cm.HasSingleLevelChange() {
		return 0
	}
	if cm.levels[0] == cm.CurrentLevel {
		return cm.levels[1]
	}
	return cm.levels[0]
}

// HasMultipleLevelChanges reports whether more than one level is connected.
func (cm *ChangeModel) HasMultipleLevelChanges() bool { return len(cm.levels) > 1 }

// Title classifies the element as "Elevator" or "Staircase" by tag, or ""
// for an unrecognized level-change element.
func (cm *ChangeModel) Title(table *osm.KeyTable) string {
	e := cm.Element
	if tagEquals(e, "highway", "elevator", table) ||
		tagExists(e, "elevator", table) ||
		tagEquals(e, "building:part", "elevator", table) ||
		tagEquals(e, "building", "elevator", table) ||
		tagEquals(e, "room", "elevator", table) ||
		tagEquals(e, "levelpart", "elevator_platform", table) {
		return "Elevator"
	}
	if tagExists(e, "stairwell", table) ||
		tagEquals(e, "stairs", "yes", table) ||
		tagEquals(e, "room", "stairs", table) {
		return "Staircase"
	}
	return ""
}

func isLevelChangeElement(e osm.Element, table *osm.KeyTable) bool {
	return tagExists(e, "highway", table) ||
		tagExists(e, "elevator", table) ||
		tagExists(e, "stairwell", table) ||
		tagEquals(e, "building:part", "elevator", table) ||
		tagEquals(e, "building", "elevator", table) ||
		tagEquals(e, "room", "elevator", table) ||
		tagEquals(e, "levelpart", "elevator_platform", table) ||
		(tagExists(e, "indoor", table) && tagEquals(e, "stairs", "yes", table)) ||
		tagEquals(e, "room", "stairs", table)
}

func rawLevelValues(e osm.Element, table *osm.KeyTable) []string {
	var out []string
	if v, ok := e.TagValueLiteral("level", table); ok {
		out = append(out, v)
	}
	if v, ok := e.TagValueLiteral("repeat_on", table); ok {
		out = append(out, v)
	}
	return out
}

func tagExists(e osm.Element, key string, table *osm.KeyTable) bool {
	v, ok := e.TagValueLiteral(key, table)
	return ok && v != ""
}

func tagEquals(e osm.Element, key, value string, table *osm.KeyTable) bool {
	v, ok := e.TagValueLiteral(key, table)
	return ok && v == value
}

func uintTag(e osm.Element, key string, table *osm.KeyTable) (uint64, bool) {
	v, ok := e.TagValueLiteral(key, table)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func uintTagOr(e osm.Element, key string, table *osm.KeyTable, fallback uint64) uint64 {
	if n, ok := uintTag(e, key, table); ok {
		return n
	}
	return fallback
}
