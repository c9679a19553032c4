package dag

import "fmt"

// DetectCycles checks the snapshot for dependency cycles. It returns a
// non-nil error if a cycle is found, naming the first task involved in the
// detected cycle.
func (g *Graph) DetectCycles() error {
	// Classic depth-first search with three sets of nodes:
	// permanent: fully visited, known not to be part of a cycle.
	// temporary: currently in the recursion stack.
	// unvisited: everything else.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(id string) error
	visit = func(id string) error {
		if permanent[id] {
			return nil
		}
		if temporary[id] {
			// A node already on the recursion stack means a back edge.
			return fmt.Errorf("cycle detected involving task '%s'", id)
		}

		temporary[id] = true
		for _, dep := range g.deps[id] {
			if _, ok := g.tasks[dep]; !ok {
				// Dangling reference; surfaced separately by Validate.
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		delete(temporary, id)
		permanent[id] = true
		return nil
	}

	for id := range g.tasks {
		if !permanent[id] {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// Validate reports dangling dependency references: an ID named in a
// dependency list that is not present as a task in the snapshot.
func (g *Graph) Validate() error {
	for id, deps := range g.deps {
		for _, dep := range deps {
			if _, ok := g.tasks[dep]; !ok {
				return fmt.Errorf("task '%s' depends on undeclared task '%s'", id, dep)
			}
		}
	}
	return nil
}
