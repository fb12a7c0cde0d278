package visibility

import "testing"

func TestCanView(t *testing.T) {
	cases := []struct {
		name   string
		level  Level
		viewer Viewer
		want   bool
	}{
		{"public anonymous", Public, Viewer{}, true},
		{"public logged", Public, Viewer{IsLogged: true}, true},
		{"logged-in denies anonymous", LoggedIn, Viewer{}, false},
		{"logged-in allows logged", LoggedIn, Viewer{IsLogged: true}, true},
		{"followers level allows follower", FollowersOrFriends, Viewer{IsLogged: true, IsFollowing: true}, true},
		{"followers level allows friend", FollowersOrFriends, Viewer{IsLogged: true, IsFriend: true}, true},
		{"followers level denies stranger", FollowersOrFriends, Viewer{IsLogged: true}, false},
		{"followers level denies anonymous follower", FollowersOrFriends, Viewer{IsFollowing: true}, false},
		{"friends-only denies follower", FriendsOnly, Viewer{IsLogged: true, IsFollowing: true}, false},
		{"friends-only allows friend", FriendsOnly, Viewer{IsLogged: true, IsFriend: true}, true},
		{"friends-only denies non-friend", FriendsOnly, Viewer{IsLogged: true}, false},
		{"owner overrides everything", FriendsOnly, Viewer{IsOwner: true}, true},
		{"unknown level fails closed", Level(9), Viewer{IsLogged: true, IsFriend: true, IsFollowing: true}, false},
		{"zero level fails closed", Level(0), Viewer{IsLogged: true}, false},
		{"unknown level still visible to owner", Level(9), Viewer{IsOwner: true}, true},
	}
	for _, c := range cases {
		if got := CanView(c.level, c.viewer); got != c.want {
			t.Fatalf("%s: CanView(%d, %+v) = %v, want %v", c.name, c.level, c.viewer, got, c.want)
		}
	}
}
