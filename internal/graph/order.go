// SPDX-License-Identifier: MPL-2.0

package graph

import "errors"

// Validate reports every requires or optionals entry that names no module and
// any cycle among requires. Cycles do not stop Install, which warns and
// continues, so callers decide whether a CycleError is fatal.
func (g *Graph) Validate() error {
	var errs []error
	for _, codename := range g.order {
		m := g.nodes[codename].module
		for _, ref := range m.Requires() {
			if _, ok := g.nodes[ref]; !ok {
				errs = append(errs, &DanglingReferenceError{Module: codename, Ref: ref})
			}
		}
		for _, ref := range m.Optionals() {
			if _, ok := g.nodes[ref]; !ok {
				errs = append(errs, &DanglingReferenceError{Module: codename, Ref: ref, Optional: true})
			}
		}
	}
	if _, err := g.TopologicalOrder(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// TopologicalOrder returns every module so that each comes after the modules
// it requires. Modules at the same depth keep declaration order. Dangling
// references are ignored.
//
// A CycleError lists the modules left with unresolved requires.
func (g *Graph) TopologicalOrder() ([]string, error) {
	if len(g.order) == 0 {
		return nil, nil
	}

	// An edge dep -> dependent means dep must be installed first.
	inDegree := make(map[string]int, len(g.order))
	dependents := make(map[string][]string)
	for _, codename := range g.order {
		inDegree[codename] += 0
		for _, dep := range g.nodes[codename].module.Requires() {
			if _, ok := g.nodes[dep]; !ok {
				continue
			}
			dependents[dep] = append(dependents[dep], codename)
			inDegree[codename]++
		}
	}

	queue := make([]string, 0, len(g.order))
	for _, codename := range g.order {
		if inDegree[codename] == 0 {
			queue = append(queue, codename)
		}
	}

	result := make([]string, 0, len(g.order))
	for len(queue) > 0 {
		codename := queue[0]
		queue = queue[1:]
		result = append(result, codename)

		for _, next := range dependents[codename] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(result) != len(g.order) {
		var stuck []string
		for _, codename := range g.order {
			if inDegree[codename] > 0 {
				stuck = append(stuck, codename)
			}
		}
		return nil, &CycleError{Modules: stuck}
	}

	return result, nil
}
