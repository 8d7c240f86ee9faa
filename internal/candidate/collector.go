// Package candidate gathers and ranks tentative value containers found
// inside the structured payloads embedded in a rendered listing page.
// The payload format is undocumented and shifts without notice, so
// collection is shape-driven: every reachable list matching a target
// shape is collected and scored, and the best one wins.
package candidate

import (
	"strings"
	"unicode"
)

// maxWalkDepth bounds the recursive payload walk. Embedded payloads are
// tree-shaped, so the bound only guards against pathological nesting.
const maxWalkDepth = 10

// Shape selects which container layout a walk is looking for.
type Shape int

const (
	// ShapeStringList matches homogeneous lists of short strings.
	ShapeStringList Shape = iota
	// ShapeRecordList matches lists of objects carrying a name-like
	// member plus a numeric-like member or a domain keyword.
	ShapeRecordList
)

// RawCandidate is a tentative container of values for one signal.
type RawCandidate struct {
	Shape      Shape
	Strings    []string
	Records    []map[string]any
	Provenance string
	Score      float64
}

// nameKeys are member names that identify the human-readable label of a
// record across the payload variants seen in the wild.
var nameKeys = []string{"name", "menuName", "itemName", "title", "displayName"}

// numericKeys are member names whose presence marks a record as a
// priced or counted domain object.
var numericKeys = []string{"price", "priceString", "count", "reviewCount", "amount", "rank", "duration"}

// domainMarkers flag record values as business content even without a
// numeric member (e.g. a price rendered as text).
var domainMarkers = []string{"원", "won", "₩"}

// Collect walks an arbitrary decoded payload and gathers every list
// matching the target shape, up to maxWalkDepth levels deep. The walk
// is side-effect free.
func Collect(root any, shape Shape, provenance string) []RawCandidate {
	var out []RawCandidate
	walk(root, shape, provenance, 0, &out)
	return out
}

func walk(node any, shape Shape, provenance string, depth int, out *[]RawCandidate) {
	if depth > maxWalkDepth || node == nil {
		return
	}
	switch v := node.(type) {
	case []any:
		if c, ok := matchList(v, shape, provenance); ok {
			*out = append(*out, c)
		}
		for _, item := range v {
			walk(item, shape, provenance, depth+1, out)
		}
	case map[string]any:
		for _, item := range v {
			walk(item, shape, provenance, depth+1, out)
		}
	}
}

func matchList(list []any, shape Shape, provenance string) (RawCandidate, bool) {
	if len(list) == 0 {
		return RawCandidate{}, false
	}
	switch shape {
	case ShapeStringList:
		strs := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok || len([]rune(s)) > 60 {
				return RawCandidate{}, false
			}
			strs = append(strs, s)
		}
		return RawCandidate{Shape: shape, Strings: strs, Provenance: provenance}, true
	case ShapeRecordList:
		recs := make([]map[string]any, 0, len(list))
		for _, item := range list {
			m, ok := item.(map[string]any)
			if !ok || !isDomainRecord(m) {
				return RawCandidate{}, false
			}
			recs = append(recs, m)
		}
		return RawCandidate{Shape: shape, Records: recs, Provenance: provenance}, true
	}
	return RawCandidate{}, false
}

func isDomainRecord(m map[string]any) bool {
	if RecordName(m) == "" {
		return false
	}
	for _, k := range numericKeys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	for _, v := range m {
		s, ok := v.(string)
		if !ok {
			continue
		}
		for _, marker := range domainMarkers {
			if strings.Contains(s, marker) {
				return true
			}
		}
	}
	return false
}

// RecordName returns the first non-empty name-like member of a record.
func RecordName(m map[string]any) string {
	for _, k := range nameKeys {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// members returns the comparable string members of a candidate, which
// for record lists are the record names.
func (c RawCandidate) members() []string {
	if c.Shape == ShapeStringList {
		return c.Strings
	}
	names := make([]string, 0, len(c.Records))
	for _, r := range c.Records {
		names = append(names, RecordName(r))
	}
	return names
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
