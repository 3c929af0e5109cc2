package session

import (
	"fmt"
	"sort"

	"cad-translator/internal/diagnostic"
	"cad-translator/internal/host"
	"cad-translator/internal/ident"
	"cad-translator/internal/model"
)

// topoSort returns node indices in translation order.
//
// depsFn(i) yields indices that must be translated before i. When several
// nodes are ready the smallest index goes first, so the order is stable. A
// cycle is an invariant violation.
func topoSort(n int, depsFn func(i int) []int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			if d < 0 || d >= n {
				return nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	for i := range out {
		sort.Ints(out[i])
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)

		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	if len(order) != n {
		return nil, diagnostic.InvariantViolation("dependency cycle among %d features", n-len(order))
	}

	return order, nil
}

// featureOrder lists every feature of m, containers after their members and
// every feature after the ones model.Dependencies names.
func featureOrder(m *model.Model) ([]model.Feature, error) {
	var all []model.Feature

	index := make(map[string]int)

	_ = m.Walk(func(f model.Feature) error {
		index[f.UID()] = len(all)
		all = append(all, f)

		return nil
	})

	var missing error

	order, err := topoSort(len(all), func(i int) []int {
		deps := model.Dependencies(all[i])
		if c, ok := all[i].(*model.FeatureContainer); ok {
			deps = append(deps, c.Features...)
		}

		out := make([]int, 0, len(deps))

		for _, d := range deps {
			j, ok := index[d.UID()]
			if !ok {
				missing = diagnostic.InvariantViolation("%q depends on %q, which is not in the model", all[i].Label(), d.Label())
				continue
			}

			out = append(out, j)
		}

		return out
	})
	if err != nil {
		return nil, err
	}

	if missing != nil {
		return nil, missing
	}

	features := make([]model.Feature, len(order))
	for i, j := range order {
		features[i] = all[j]
	}

	return features, nil
}

// importable reports whether a host object becomes an internal feature.
// Origin axes and planes are part of their origin.
func importable(obj *host.Object) bool {
	return obj.Type != host.TypeLine && obj.Type != host.TypePlane
}

// hostOrder lists the importable objects of doc so that every object comes
// after the objects it refers to.
func hostOrder(doc host.Document) ([]*host.Object, error) {
	var objects []*host.Object

	for _, obj := range doc.Objects() {
		if importable(obj) {
			objects = append(objects, obj)
		}
	}

	index := make(map[ident.FeatureID]int, len(objects))
	for i, obj := range objects {
		index[obj.ID] = i
	}

	// owner maps a referenced object to the importable object providing it.
	owner := func(id ident.FeatureID) (int, bool) {
		if i, ok := index[id]; ok {
			return i, true
		}

		obj, err := doc.Object(id)
		if err != nil || obj.Parent == 0 {
			return 0, false
		}

		i, ok := index[obj.Parent]

		return i, ok
	}

	var missing error

	order, err := topoSort(len(objects), func(i int) []int {
		obj := objects[i]

		var refs []ident.FeatureID

		switch obj.Type {
		case host.TypeSketch:
			if obj.Support != nil {
				refs = append(refs, obj.Support.Object)
			}
		case host.TypePad:
			refs = append(refs, obj.Profile)
		case host.TypeBody:
			refs = append(refs, obj.Group...)
		}

		out := make([]int, 0, len(refs))

		for _, ref := range refs {
			j, ok := owner(ref)
			if !ok {
				missing = diagnostic.LookupFailure("object referenced by "+obj.Name, ref)
				continue
			}

			out = append(out, j)
		}

		return out
	})
	if err != nil {
		return nil, err
	}

	if missing != nil {
		return nil, missing
	}

	out := make([]*host.Object, len(order))
	for i, j := range order {
		out[i] = objects[j]
	}

	return out, nil
}
