// Package heuristic scores roles from resume text or quiz answers using
// static keyword tables. Every function is pure and never calls the model.
package heuristic

import "strings"

// text is lowercased input searched by substring.
type text string

func newText(s string) text { return text(strings.ToLower(s)) }

func (t text) hasAny(keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(string(t), k) {
			return true
		}
	}
	return false
}

func (t text) count(keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(string(t), k) {
			n++
		}
	}
	return n
}

func (t text) present(keywords []string) []string {
	found := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if strings.Contains(string(t), k) {
			found = append(found, k)
		}
	}
	return found
}

func clone(s []string) []string {
	return append([]string{}, s...)
}
