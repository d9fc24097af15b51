// Package etag_test contains the unit tests for the etag package.
package etag

import "testing"

func TestCompute(t *testing.T) {
	// 1. The same content always yields the same tag
	tag1 := Compute([]byte("service state"))
	tag2 := Compute([]byte("service state"))
	if tag1 != tag2 {
		t.Errorf("expected identical content to yield identical tags, got %q and %q", tag1, tag2)
	}

	// 2. Different content yields a different tag
	tag3 := Compute([]byte("service state changed"))
	if tag3 == tag1 {
		t.Error("expected different content to yield a different tag")
	}

	// 3. An empty payload still has a well-defined tag
	if Compute([]byte{}) == "" {
		t.Error("expected a non-empty tag for an empty payload")
	}
	if Compute([]byte{}) != Compute([]byte{}) {
		t.Error("expected the empty-payload tag to be stable")
	}
}

func TestMatch(t *testing.T) {
	current := Compute([]byte("v1"))

	// 1. A quoted tag matches the current tag
	if !Match(Quote(current), current, true) {
		t.Error("expected the current tag to match itself")
	}

	// 2. A stale tag does not match
	stale := Compute([]byte("v0"))
	if Match(Quote(stale), current, true) {
		t.Error("expected a stale tag to not match")
	}

	// 3. A list matches if any member matches
	list := Quote(stale) + ", " + Quote(current)
	if !Match(list, current, true) {
		t.Error("expected a list containing the current tag to match")
	}

	// 4. The weak form of the current tag still matches
	if !Match("W/"+Quote(current), current, true) {
		t.Error("expected the weak form of the current tag to match")
	}

	// 5. The wildcard matches exactly when an entry exists
	if !Match(Wildcard, current, true) {
		t.Error("expected the wildcard to match an existing entry")
	}
	if Match(Wildcard, "", false) {
		t.Error("expected the wildcard to not match when nothing is stored")
	}

	// 6. Nothing matches an absent entry
	if Match(Quote(current), "", false) {
		t.Error("expected no tag to match when nothing is stored")
	}
}

func TestNoneMatch(t *testing.T) {
	current := Compute([]byte("v1"))

	// 1. The precondition fails when the listed tag is current
	if NoneMatch(Quote(current), current, true) {
		t.Error("expected none-match to fail against the current tag")
	}

	// 2. It holds for a tag that is no longer current
	if !NoneMatch(Quote(Compute([]byte("v0"))), current, true) {
		t.Error("expected none-match to hold for a stale tag")
	}

	// 3. The wildcard form guards creation: it holds only when absent
	if NoneMatch(Wildcard, current, true) {
		t.Error("expected wildcard none-match to fail for an existing entry")
	}
	if !NoneMatch(Wildcard, "", false) {
		t.Error("expected wildcard none-match to hold when nothing is stored")
	}
}
