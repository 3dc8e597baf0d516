// Package match builds the query functions used by filterable menus
package match

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Matcher returns the indexes of items that match text, best match first
type Matcher func(items []string, text string) []int

// Names of the built-in matchers
const (
	NamePrefix    = "prefix"
	NameSubstring = "substring"
	NameFuzzy     = "fuzzy"
)

// Prefix keeps items starting with text, in their original order
func Prefix(items []string, text string) []int {
	return keep(items, text, strings.HasPrefix)
}

// Substring keeps items containing text, in their original order
func Substring(items []string, text string) []int {
	return keep(items, text, strings.Contains)
}

// Fuzzy keeps items containing the characters of text in order, best
// scoring first
func Fuzzy(items []string, text string) []int {
	if text == "" {
		return all(len(items))
	}
	matches := fuzzy.Find(text, items)
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.Index
	}
	return out
}

// IgnoreCase wraps m so that case does not matter
func IgnoreCase(m Matcher) Matcher {
	return func(items []string, text string) []int {
		lowered := make([]string, len(items))
		for i, it := range items {
			lowered[i] = strings.ToLower(it)
		}
		return m(lowered, strings.ToLower(text))
	}
}

// ByName returns the named matcher
func ByName(name string, ignoreCase bool) (Matcher, error) {
	var m Matcher
	switch strings.ToLower(name) {
	case NamePrefix, "":
		m = Prefix
	case NameSubstring:
		m = Substring
	case NameFuzzy:
		m = Fuzzy
	default:
		return nil, fmt.Errorf("unknown matcher %q (want %s, %s or %s)", name, NamePrefix, NameSubstring, NameFuzzy)
	}
	if ignoreCase {
		m = IgnoreCase(m)
	}
	return m, nil
}

// Query turns items into the function a filterable menu calls on every
// edit. Each call returns a fresh slice.
func Query[T any](items []T, label func(T) string, m Matcher) func(string) []T {
	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = label(it)
	}

	return func(text string) []T {
		idx := m(labels, text)
		out := make([]T, len(idx))
		for i, j := range idx {
			out[i] = items[j]
		}
		return out
	}
}

func keep(items []string, text string, pred func(s, text string) bool) []int {
	if text == "" {
		return all(len(items))
	}
	var out []int
	for i, it := range items {
		if pred(it, text) {
			out = append(out, i)
		}
	}
	return out
}

func all(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
