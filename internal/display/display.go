// Package display provides human-readable names for machine codes.
//
// Rule: code is for machines, words are for humans.
// Use these functions in CLI output, report titles and logs.
// Keep raw codes for config fields, map keys, and equality comparisons.
package display

import (
	"strconv"
	"strings"
)

// --- Baseline strategies ---

var strategies = map[string]string{
	"most_frequent": "Most Frequent",
	"stratified":    "Stratified",
	"uniform":       "Uniform",
}

// Strategy returns the human-readable name for a baseline strategy code.
// Unknown codes are returned as-is.
func Strategy(code string) string {
	if name, ok := strategies[code]; ok {
		return name
	}
	return code
}

// StrategyWithCode returns "Most Frequent (most_frequent)" format.
func StrategyWithCode(code string) string {
	if name := Strategy(code); name != code {
		return name + " (" + code + ")"
	}
	return code
}

// --- Output formats ---

var formats = map[string]string{
	"png":      "PNG image",
	"pdf":      "PDF document",
	"svg":      "SVG image",
	"ascii":    "ASCII table",
	"markdown": "Markdown table",
	"csv":      "CSV export",
}

// Format returns the human-readable name for an output format code.
func Format(code string) string {
	if name, ok := formats[code]; ok {
		return name
	}
	return code
}

// --- Classes ---

// Class returns the display label for class index i: names[i] when a
// non-empty name is available, otherwise the index itself.
func Class(i int, names []string) string {
	if i >= 0 && i < len(names) && names[i] != "" {
		return names[i]
	}
	return strconv.Itoa(i)
}

// ClassTicks returns tick labels "0".."n-1".
func ClassTicks(n int) []string {
	ticks := make([]string, n)
	for i := range ticks {
		ticks[i] = strconv.Itoa(i)
	}
	return ticks
}

// ClassList joins class labels for log lines: "0, 1, 2".
func ClassList(n int, names []string) string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = Class(i, names)
	}
	return strings.Join(labels, ", ")
}
