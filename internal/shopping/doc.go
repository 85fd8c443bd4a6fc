// Mealshare - Recipe Sharing and Shopping List Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

// Package shopping turns the contents of a user's cart into a shopping list.
//
// The pipeline has two strictly layered stages:
//
//	cart store -> Aggregate -> Renderer.Render -> HTTP transport
//
// Aggregate merges raw CartLine rows by ingredient name, summing amounts and
// keeping the order in which each name first appeared. The first unit seen
// for a name wins; UnitConflicts reports names that arrived with more than
// one unit so callers can surface them.
//
// Renderer lays the merged lines out as a numbered list under a title and
// draws them into a PDF. Layout.Paginate is the pure layout step and is
// exposed so pagination can be inspected without decoding PDF bytes.
// Numbering continues across page breaks.
//
// Output is deterministic: identical input produces byte-identical PDFs.
// The creation date is fixed and catalog entries are sorted.
//
// Fonts are explicit configuration. A Renderer is built with a Font value
// (DefaultFont or LoadFontFile) and never registers fonts globally. A
// missing or unusable font is reported as *RenderError rather than
// producing a degraded document.
//
// Every function in this package is safe for concurrent use. Nothing here
// performs I/O except LoadFontFile.
package shopping
