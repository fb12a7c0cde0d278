// Package visibility decides whether a viewer may see a piece of content.
// It is pure: friend/follow status must be resolved by the caller.
package visibility

// Level is the enumerated audience of a piece of content or profile surface.
type Level int

const (
	Public             Level = 1
	LoggedIn           Level = 2
	FollowersOrFriends Level = 3
	FriendsOnly        Level = 4
)

// Viewer is the caller-resolved context of whoever is looking.
type Viewer struct {
	IsOwner     bool
	IsLogged    bool
	IsFriend    bool
	IsFollowing bool
}

// CanView evaluates the rules in priority order, first match wins. The owner
// always sees their own content. Unrecognized levels deny, so corrupt level
// values never over-expose.
func CanView(l Level, v Viewer) bool {
	if v.IsOwner {
		return true
	}
	switch l {
	case Public:
		return true
	case LoggedIn:
		return v.IsLogged
	case FollowersOrFriends:
		return v.IsLogged && (v.IsFriend || v.IsFollowing)
	case FriendsOnly:
		return v.IsLogged && v.IsFriend
	}
	return false
}
