package handler

import (
	"testing"

	"linkfolio/backend/internal/visibility"
)

func TestCanReadKey(t *testing.T) {
	cases := []struct {
		name   string
		ref    mediaKeyRef
		viewer visibility.Viewer
		want   bool
	}{
		{"unresolved key denies anonymous", mediaKeyRef{}, visibility.Viewer{}, false},
		{"unresolved key denies logged-in viewer", mediaKeyRef{}, visibility.Viewer{IsLogged: true}, false},
		{
			"public object allows anonymous",
			mediaKeyRef{ownerID: 1, level: visibility.Public, found: true},
			visibility.Viewer{},
			true,
		},
		{
			"logged-in object denies anonymous",
			mediaKeyRef{ownerID: 1, level: visibility.LoggedIn, found: true},
			visibility.Viewer{},
			false,
		},
		{
			"friends-only object denies follower",
			mediaKeyRef{ownerID: 1, level: visibility.FriendsOnly, found: true},
			visibility.Viewer{IsLogged: true, IsFollowing: true},
			false,
		},
		{
			"friends-only object allows owner",
			mediaKeyRef{ownerID: 1, level: visibility.FriendsOnly, found: true},
			visibility.Viewer{IsOwner: true, IsLogged: true},
			true,
		},
	}
	for _, c := range cases {
		if got := canReadKey(c.ref, c.viewer); got != c.want {
			t.Fatalf("%s: canReadKey = %v, want %v", c.name, got, c.want)
		}
	}
}
