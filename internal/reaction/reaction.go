// Package reaction implements like/unlike reactions generically over the four
// target families (posts, images, comments, replies). Each family has its own
// like and unlike tables; the tables share one row shape and one code path,
// selected by TargetKind.
package reaction

// TargetKind names a reaction target family.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetImage   TargetKind = "image"
	TargetComment TargetKind = "comment"
	TargetReply   TargetKind = "reply"
)

// Kinds lists every target family, in migration order.
var Kinds = []TargetKind{TargetPost, TargetImage, TargetComment, TargetReply}

func (k TargetKind) LikeTable() string   { return string(k) + "_likes" }
func (k TargetKind) UnlikeTable() string { return string(k) + "_unlikes" }

// Reaction is a viewer's stance toward a target.
type Reaction string

const (
	Like   Reaction = "LIKE"
	Unlike Reaction = "UNLIKE"
)

// Summary is the aggregate a target carries in API responses. UserReaction is
// nil when the viewer is anonymous or has no stance.
type Summary struct {
	LikesCount   int64     `json:"likes_count"`
	UnlikesCount int64     `json:"unlikes_count"`
	UserReaction *Reaction `json:"user_reaction"`
}

// Aggregate folds global counts and the viewer's own rows into a Summary.
// A like row wins over an unlike row; holding both is unrepresentable by the
// toggle logic, but if it ever appears the like is reported.
func Aggregate(likes, unlikes int64, viewerLiked, viewerUnliked bool) Summary {
	s := Summary{LikesCount: likes, UnlikesCount: unlikes}
	switch {
	case viewerLiked:
		r := Like
		s.UserReaction = &r
	case viewerUnliked:
		r := Unlike
		s.UserReaction = &r
	}
	return s
}

// nextRows returns which rows should exist after the viewer applies r while
// holding (hasLike, hasUnlike). Setting a reaction clears its opposite;
// re-applying the active reaction clears it (toggle off).
func nextRows(hasLike, hasUnlike bool, r Reaction) (wantLike, wantUnlike bool) {
	switch r {
	case Like:
		return !hasLike, false
	case Unlike:
		return false, !hasUnlike
	}
	return hasLike, hasUnlike
}
