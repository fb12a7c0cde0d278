package reaction

import "testing"

func TestAggregate(t *testing.T) {
	cases := []struct {
		name           string
		likes, unlikes int64
		liked, unliked bool
		want           *Reaction
	}{
		{"no viewer stance", 3, 1, false, false, nil},
		{"viewer liked", 3, 1, true, false, ptr(Like)},
		{"viewer unliked", 0, 5, false, true, ptr(Unlike)},
		{"like wins over unlike", 1, 1, true, true, ptr(Like)},
	}
	for _, c := range cases {
		s := Aggregate(c.likes, c.unlikes, c.liked, c.unliked)
		if s.LikesCount != c.likes || s.UnlikesCount != c.unlikes {
			t.Fatalf("%s: counts %d/%d, want %d/%d", c.name, s.LikesCount, s.UnlikesCount, c.likes, c.unlikes)
		}
		if (s.UserReaction == nil) != (c.want == nil) {
			t.Fatalf("%s: reaction %v, want %v", c.name, s.UserReaction, c.want)
		}
		if s.UserReaction != nil && *s.UserReaction != *c.want {
			t.Fatalf("%s: reaction %s, want %s", c.name, *s.UserReaction, *c.want)
		}
	}
}

func TestToggleDecision(t *testing.T) {
	cases := []struct {
		name                 string
		hasLike, hasUnlike   bool
		apply                Reaction
		wantLike, wantUnlike bool
	}{
		{"like from nothing", false, false, Like, true, false},
		{"like again toggles off", true, false, Like, false, false},
		{"unlike from nothing", false, false, Unlike, false, true},
		{"unlike again toggles off", false, true, Unlike, false, false},
		{"like replaces unlike", false, true, Like, true, false},
		{"unlike replaces like", true, false, Unlike, false, true},
		{"unknown reaction is a no-op", true, false, Reaction("MEH"), true, false},
	}
	for _, c := range cases {
		gotLike, gotUnlike := nextRows(c.hasLike, c.hasUnlike, c.apply)
		if gotLike != c.wantLike || gotUnlike != c.wantUnlike {
			t.Fatalf("%s: got (%v,%v), want (%v,%v)", c.name, gotLike, gotUnlike, c.wantLike, c.wantUnlike)
		}
		if gotLike && gotUnlike {
			t.Fatalf("%s: both rows set, reactions must be mutually exclusive", c.name)
		}
	}
}

// LIKE then LIKE returns to null; LIKE then UNLIKE leaves exactly the unlike row.
func TestToggleSequences(t *testing.T) {
	like, unlike := nextRows(false, false, Like)
	like, unlike = nextRows(like, unlike, Like)
	if like || unlike {
		t.Fatalf("like twice: got (%v,%v), want (false,false)", like, unlike)
	}

	like, unlike = nextRows(false, false, Like)
	like, unlike = nextRows(like, unlike, Unlike)
	if like || !unlike {
		t.Fatalf("like then unlike: got (%v,%v), want (false,true)", like, unlike)
	}
}

func ptr(r Reaction) *Reaction { return &r }
