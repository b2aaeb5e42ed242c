package plan

import (
	"log/slog"
	"sort"
)

// Dependencies maps every table of the arena to the tables it references
// through bindings. Each list follows first-appearance order and holds no
// duplicates or self references.
func Dependencies(a *Arena) map[string][]string {
	deps := make(map[string][]string)
	seen := make(map[[2]string]bool)
	for _, table := range a.Tables() {
		deps[table] = []string{}
	}
	for _, n := range a.nodes {
		for _, b := range n.Bindings {
			target := a.nodes[b.Target].Table
			if target == n.Table || seen[[2]string{n.Table, target}] {
				continue
			}
			seen[[2]string{n.Table, target}] = true
			deps[n.Table] = append(deps[n.Table], target)
		}
	}
	return deps
}

// SortTables orders the tables of the arena so that every table comes after
// the tables it references.
//
// This implements Kahn's algorithm:
//  1. Calculate in-degrees (number of referenced tables) for each table
//  2. Initialize the queue with tables that reference nothing
//  3. Process the queue: emit a table, reduce the in-degree of its dependents
//  4. Continue until the queue is empty
//
// Ties keep the order in which tables first appear in the arena, so the
// result is deterministic. If the bindings form a cycle a warning is logged
// and the remaining tables are appended in arena order.
func SortTables(a *Arena) []string {
	tables := a.Tables()
	rank := make(map[string]int, len(tables))
	for i, t := range tables {
		rank[t] = i
	}

	deps := Dependencies(a)
	inDegree := make(map[string]int, len(tables))
	dependents := make(map[string][]string, len(tables))
	for _, table := range tables {
		inDegree[table] = len(deps[table])
		for _, dep := range deps[table] {
			dependents[dep] = append(dependents[dep], table)
		}
	}

	var queue []string
	for _, table := range tables {
		if inDegree[table] == 0 {
			queue = append(queue, table)
		}
	}

	sorted := make([]string, 0, len(tables))
	sorted = processQueue(queue, sorted, dependents, inDegree, rank)
	return appendCircular(tables, sorted)
}

func processQueue(queue, sorted []string, dependents map[string][]string, inDegree map[string]int, rank map[string]int) []string {
	for len(queue) > 0 {
		// Take the earliest-declared ready table
		sort.SliceStable(queue, func(i, j int) bool { return rank[queue[i]] < rank[queue[j]] })
		current := queue[0]
		queue = queue[1:]
		sorted = append(sorted, current)

		// Reduce in-degree of tables that reference the current table
		for _, table := range dependents[current] {
			inDegree[table]--
			if inDegree[table] == 0 {
				queue = append(queue, table)
			}
		}
	}
	return sorted
}

func appendCircular(tables, sorted []string) []string {
	if len(sorted) == len(tables) {
		return sorted
	}

	slog.Warn("Circular dependency detected in foreign key bindings. Some tables may not be ordered correctly.")
	done := make(map[string]bool, len(sorted))
	for _, t := range sorted {
		done[t] = true
	}
	for _, t := range tables {
		if !done[t] {
			sorted = append(sorted, t)
		}
	}
	return sorted
}
