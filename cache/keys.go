package cache

import (
	"fmt"
	"strings"
)

// KeySeparator defines the delimiter used between cache key segments.
// Invalidation patterns anchor on these segments, so the separator must never
// appear inside a segment produced by Key.
const KeySeparator = ":"

// Segment normalizes one key segment: strings verbatim, fmt.Stringer via
// String, everything else via %v. Separator characters inside a segment are
// replaced so a crafted segment cannot widen an invalidation pattern's match.
// Invalidation patterns that target a single segment must normalize it the
// same way, or keys built from separator-bearing values will never match.
func Segment(segment any) string {
	var s string
	switch v := segment.(type) {
	case string:
		s = v
	case fmt.Stringer:
		s = v.String()
	default:
		s = fmt.Sprintf("%v", segment)
	}
	return strings.ReplaceAll(s, KeySeparator, "_")
}

// Key builds a cache key from the given segments using the standard
// separator, normalizing each via Segment.
//
//	Key("employee", id, "history", 50) -> "employee:<id>:history:50"
func Key(segments ...any) string {
	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		parts = append(parts, Segment(segment))
	}
	return strings.Join(parts, KeySeparator)
}
