package domain

import "strings"

// Path addresses a location in a configuration tree. Segments are joined
// with "/"; a segment addressing a list element carries its resolved key
// in brackets, e.g. "interface[eth0]". Paths are immutable values: every
// method returns a new Path.
type Path struct {
	segments []string
}

// NewPath creates a path from one or more leading segments.
func NewPath(segments ...string) Path {
	return Path{segments: append([]string(nil), segments...)}
}

// Child returns the path extended by one segment.
func (p Path) Child(segment string) Path {
	segs := make([]string, 0, len(p.segments)+1)
	segs = append(segs, p.segments...)
	return Path{segments: append(segs, segment)}
}

// ListElem returns the path with the list element key appended to the
// final segment, rendering it as "segment[key]".
func (p Path) ListElem(key string) Path {
	if len(p.segments) == 0 {
		return Path{segments: []string{"[" + key + "]"}}
	}
	segs := append([]string(nil), p.segments...)
	segs[len(segs)-1] = segs[len(segs)-1] + "[" + key + "]"
	return Path{segments: segs}
}

// Segments returns a copy of the path segments.
func (p Path) Segments() []string {
	return append([]string(nil), p.segments...)
}

// First returns the top-level segment, or "" for an empty path.
func (p Path) First() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[0]
}

// IsEmpty reports whether the path has no segments.
func (p Path) IsEmpty() bool {
	return len(p.segments) == 0
}

func (p Path) String() string {
	return strings.Join(p.segments, "/")
}

// MarshalJSON renders the path as its string form.
func (p Path) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strings.ReplaceAll(p.String(), `"`, `\"`) + `"`), nil
}
