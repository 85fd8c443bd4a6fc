// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package shopping

import "slices"

// CartLine is one ingredient requirement contributed by one recipe in a cart.
type CartLine struct {
	Name   string `json:"name"`
	Unit   string `json:"measurement_unit"`
	Amount int64  `json:"amount"`
}

// AggregatedLine is one ingredient merged across every recipe in a cart.
type AggregatedLine struct {
	Name        string `json:"name"`
	Unit        string `json:"measurement_unit"`
	TotalAmount int64  `json:"amount"`
}

// UnitConflict describes an ingredient name that appeared with more than one
// measurement unit. Units are listed in first-seen order; Units[0] is the
// unit Aggregate kept.
type UnitConflict struct {
	Name  string   `json:"name"`
	Units []string `json:"units"`
}

// Aggregate merges cart lines by ingredient name.
//
// Entries keep the order in which their name first appears in lines, and the
// first unit seen for a name is kept. Amounts are summed into an int64.
// A nil or empty input yields an empty, non-nil slice.
func Aggregate(lines []CartLine) []AggregatedLine {
	out := make([]AggregatedLine, 0, len(lines))
	index := make(map[string]int, len(lines))

	for _, line := range lines {
		if i, ok := index[line.Name]; ok {
			out[i].TotalAmount += line.Amount
			continue
		}
		index[line.Name] = len(out)
		out = append(out, AggregatedLine{
			Name:        line.Name,
			Unit:        line.Unit,
			TotalAmount: line.Amount,
		})
	}

	return out
}

// UnitConflicts returns the ingredient names in lines that were given more
// than one distinct unit, ordered by first appearance of the name.
func UnitConflicts(lines []CartLine) []UnitConflict {
	var conflicts []UnitConflict
	units := make(map[string][]string)
	order := make([]string, 0)

	for _, line := range lines {
		seen, ok := units[line.Name]
		if !ok {
			order = append(order, line.Name)
		}
		if !slices.Contains(seen, line.Unit) {
			units[line.Name] = append(seen, line.Unit)
		}
	}

	for _, name := range order {
		if u := units[name]; len(u) > 1 {
			conflicts = append(conflicts, UnitConflict{Name: name, Units: u})
		}
	}
	return conflicts
}
