// Package etag derives entity tags from state payloads and evaluates the
// conditional-request preconditions built on top of them.
package etag

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Tag is an opaque fingerprint of one version of a payload. Byte-identical
// payloads always carry the same Tag, so comparing tags stands in for
// comparing content.
type Tag string

// Wildcard is the precondition form that matches any current tag.
const Wildcard = "*"

// Compute derives the Tag for a payload. The digest choice is not part of
// the contract; only determinism and content-sensitivity are. SHA-256 keeps
// distinct payloads on distinct tags for all practical purposes.
func Compute(state []byte) Tag {
	sum := sha256.Sum256(state)
	return Tag(hex.EncodeToString(sum[:]))
}

// Quote renders a Tag in its HTTP header form.
func Quote(t Tag) string {
	return `"` + string(t) + `"`
}

// normalize strips the weak marker and surrounding quotes from one member of
// a precondition list. Comparison is always weak here: a W/ marker carries no
// extra meaning for content-derived tags.
func normalize(member string) string {
	s := strings.TrimSpace(member)
	s = strings.TrimPrefix(s, "W/")
	return strings.Trim(s, `"`)
}

// Match evaluates an If-Match style precondition against the current tag.
// header is the raw field value: either Wildcard or a comma-separated tag
// list. exists reports whether any entry is currently stored; Wildcard
// requires only that.
func Match(header string, current Tag, exists bool) bool {
	if strings.TrimSpace(header) == Wildcard {
		return exists
	}
	if !exists {
		return false
	}
	for _, member := range strings.Split(header, ",") {
		if normalize(member) == string(current) {
			return true
		}
	}
	return false
}

// NoneMatch evaluates an If-None-Match style precondition: it holds when no
// member of the list matches the current tag. Wildcard fails whenever an
// entry exists at all.
func NoneMatch(header string, current Tag, exists bool) bool {
	return !Match(header, current, exists)
}
