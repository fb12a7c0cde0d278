package relation

import "testing"

func TestResolveKnownPatterns(t *testing.T) {
	cases := []struct {
		edges Edges
		want  State
	}{
		{Edges{0, 0, 0, 0}, StateNeutral},
		{Edges{1, 0, 0, 0}, StateRequested},
		{Edges{0, 0, 1, 0}, StateIncoming},
		{Edges{0, 1, 1, 0}, StateRejected},
		{Edges{1, 0, 0, 1}, StateRejectedBy},
		{Edges{0, 1, 0, 0}, StateDissolved},
		{Edges{0, 0, 0, 1}, StateDissolvedBy},
		{Edges{1, 1, 1, 1}, StateFriends},
	}
	for i, c := range cases {
		if got := Resolve(c.edges); got != c.want {
			t.Fatalf("case %d: Resolve(%v) = %d, want %d", i, c.edges, got, c.want)
		}
	}
}

func TestResolveUnknownPatterns(t *testing.T) {
	known := map[Edges]bool{
		{0, 0, 0, 0}: true,
		{1, 0, 0, 0}: true,
		{0, 0, 1, 0}: true,
		{0, 1, 1, 0}: true,
		{1, 0, 0, 1}: true,
		{0, 1, 0, 0}: true,
		{0, 0, 0, 1}: true,
		{1, 1, 1, 1}: true,
	}
	for i := 0; i < 16; i++ {
		e := Edges{i >> 3 & 1, i >> 2 & 1, i >> 1 & 1, i & 1}
		if known[e] {
			continue
		}
		if got := Resolve(e); got != StateNone {
			t.Fatalf("Resolve(%v) = %d, want StateNone", e, got)
		}
	}
}

func TestTransitions(t *testing.T) {
	cases := []struct {
		action Action
		cur    State
		want   State
		mutate bool
	}{
		{ActionSend, StateNeutral, StateRequested, true},
		{ActionSend, StateNone, StateRequested, true},
		// Crossed requests resolve directly to friends.
		{ActionSend, StateIncoming, StateFriends, true},
		{ActionAccept, StateIncoming, StateFriends, true},
		{ActionReject, StateIncoming, StateRejected, true},
		{ActionDelete, StateFriends, StateDissolved, true},
		{ActionCancel, StateRequested, StateNeutral, true},
		{ActionGet, StateFriends, StateFriends, false},
		{Action("poke"), StateRequested, StateRequested, false},
	}
	for i, c := range cases {
		next, ok := transition(c.action, c.cur)
		if ok != c.mutate {
			t.Fatalf("case %d: transition(%q, %d) ok = %v, want %v", i, c.action, c.cur, ok, c.mutate)
		}
		if !ok {
			continue
		}
		if got := Resolve(next); got != c.want {
			t.Fatalf("case %d: transition(%q, %d) resolves to %d, want %d", i, c.action, c.cur, got, c.want)
		}
	}
}

// Two users sending requests to each other must end up friends regardless of
// order. The second sender sees the first request as incoming and promotes.
func TestCrossedRequestsConverge(t *testing.T) {
	// A sends first.
	afterA, ok := transition(ActionSend, StateNeutral)
	if !ok || Resolve(afterA) != StateRequested {
		t.Fatalf("A's send: got %d", Resolve(afterA))
	}
	// From B's perspective the same rows read mirrored: A requested.
	fromB := Edges{afterA.PeerReq, afterA.PeerRes, afterA.Req, afterA.Res}
	if Resolve(fromB) != StateIncoming {
		t.Fatalf("B should see incoming, got %d", Resolve(fromB))
	}
	afterB, ok := transition(ActionSend, Resolve(fromB))
	if !ok || Resolve(afterB) != StateFriends {
		t.Fatalf("B's send should promote to friends, got %d", Resolve(afterB))
	}
}
