package selection

import (
	"sort"

	"github.com/recsweep/recsweep/internal/records"
)

// OwnerGroup is one owner bucket over the currently visible records. Groups
// are derived views: they are recomputed from the page and the selection on
// every change, never mutated in place.
type OwnerGroup struct {
	OwnerType   string
	OwnerID     string
	OwnerName   string
	MemberKeys  []string
	Count       int
	AllSelected bool
	Collapsed   bool
}

// GroupByOwner buckets the visible records by owner, preserving first-seen
// order. Records without an owner id land in a trailing "unassigned" group.
// Every group starts expanded; collapse state belongs to the caller's view
// and is re-applied after recomputation.
func GroupByOwner(recs []records.UnifiedRecording, sel *Selection) []OwnerGroup {
	type bucket struct {
		group OwnerGroup
		order int
	}
	buckets := map[string]*bucket{}
	next := 0
	for _, r := range recs {
		id := r.Owner.ID
		name := r.Owner.Name
		if id == "" {
			id = "unassigned"
			if name == "" {
				name = "Unassigned"
			}
		}
		b, ok := buckets[id]
		if !ok {
			b = &bucket{
				group: OwnerGroup{
					OwnerType: r.Owner.Type,
					OwnerID:   id,
					OwnerName: name,
				},
				order: next,
			}
			next++
			buckets[id] = b
		}
		b.group.MemberKeys = append(b.group.MemberKeys, r.SelectionKey())
	}

	out := make([]OwnerGroup, 0, len(buckets))
	for _, b := range buckets {
		g := b.group
		g.Count = len(g.MemberKeys)
		g.AllSelected = allSelected(g.MemberKeys, sel)
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		return buckets[out[i].OwnerID].order < buckets[out[j].OwnerID].order
	})
	return out
}

func allSelected(keys []string, sel *Selection) bool {
	if len(keys) == 0 || sel == nil {
		return false
	}
	for _, k := range keys {
		if !sel.Has(k) {
			return false
		}
	}
	return true
}
