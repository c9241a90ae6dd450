package inventory

import (
	"fmt"
	"strings"
)

// Group is a runtime-only aggregation of cars sharing one product line
// (make, model, package). It is recomputed from the car list and never
// persisted.
type Group struct {
	Key            string  `json:"key"`
	Representative Car     `json:"representative"`
	MemberIDs      []int64 `json:"member_ids"`
}

// GroupKey builds the case-insensitive product-line key. A missing package
// normalises to the empty string, so records differing only in casing fold
// into one group.
func GroupKey(make, model, pkg string) string {
	return strings.ToLower(make + "_" + model + "_" + pkg)
}

// GroupByProductLine partitions cars into product-line groups. The first car
// seen for a key becomes the group's representative; later members only
// contribute their identifier.
func GroupByProductLine(cars []Car) []Group {
	index := make(map[string]int, len(cars))
	groups := make([]Group, 0, len(cars))
	for i := range cars {
		c := cars[i]
		key := GroupKey(c.Make, c.Model, c.Package)
		if at, ok := index[key]; ok {
			groups[at].MemberIDs = append(groups[at].MemberIDs, c.ID)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, Group{
			Key:            key,
			Representative: c,
			MemberIDs:      []int64{c.ID},
		})
	}
	return groups
}

// Label formats the product line for display, using the representative's
// casing.
func (g Group) Label() string {
	rep := g.Representative
	label := rep.Make + " " + rep.Model
	if rep.Package != "" {
		label += " - " + rep.Package
	}
	if len(g.MemberIDs) > 1 {
		label += fmt.Sprintf(" (%d cars)", len(g.MemberIDs))
	}
	return label
}

// ResolveGroup finds the group the given car belongs to by re-deriving its
// key. When no group matches, for instance after a concurrent data change, it
// falls back to a synthetic single-member group so the caller still updates
// the one record instead of silently doing nothing.
func ResolveGroup(groups []Group, car Car) Group {
	key := GroupKey(car.Make, car.Model, car.Package)
	for _, g := range groups {
		if g.Key == key {
			return g
		}
	}
	return Group{Key: key, Representative: car, MemberIDs: []int64{car.ID}}
}
