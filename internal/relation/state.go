package relation

// State is the resolved symmetric relationship between two users, derived
// from the four flags of their two directional rows. Values are stable and
// stored nowhere; the flags are the source of truth.
type State int

const (
	// StateNone covers both "no rows exist" and any flag pattern outside the
	// seven known ones. Corrupt or racing writes surface here instead of
	// being guessed into a neighbor state.
	StateNone State = iota

	// StateNeutral is the explicit all-zero pattern: rows exist, no stance.
	StateNeutral

	// StateRequested: the viewer sent a request that is still pending.
	StateRequested

	// StateIncoming: the peer sent a request that is still pending.
	StateIncoming

	// StateRejected: the viewer rejected the peer's pending request.
	StateRejected

	// StateRejectedBy is the symmetric counterpart of StateRejected.
	StateRejectedBy

	// StateDissolved: the viewer dissolved an existing friendship.
	StateDissolved

	// StateDissolvedBy is the symmetric counterpart of StateDissolved.
	StateDissolvedBy

	// StateFriends: both requests accepted on both rows.
	StateFriends
)

// Edges are the two directional rows between a viewer and a peer collapsed to
// their four flags. Req/Res belong to the viewer→peer row, PeerReq/PeerRes to
// the peer→viewer row. An absent row reads as zero flags; distinguishing
// "no rows at all" from explicit neutral is the caller's job.
type Edges struct {
	Req     int
	Res     int
	PeerReq int
	PeerRes int
}

// Resolve pattern-matches the four flags against the known encodings.
func Resolve(e Edges) State {
	switch [4]int{e.Req, e.Res, e.PeerReq, e.PeerRes} {
	case [4]int{0, 0, 0, 0}:
		return StateNeutral
	case [4]int{1, 0, 0, 0}:
		return StateRequested
	case [4]int{0, 0, 1, 0}:
		return StateIncoming
	case [4]int{0, 1, 1, 0}:
		return StateRejected
	case [4]int{1, 0, 0, 1}:
		return StateRejectedBy
	case [4]int{0, 1, 0, 0}:
		return StateDissolved
	case [4]int{0, 0, 0, 1}:
		return StateDissolvedBy
	case [4]int{1, 1, 1, 1}:
		return StateFriends
	}
	return StateNone
}

// Action is a relationship mutation requested by the viewer. Unrecognized
// actions are no-ops.
type Action string

const (
	ActionSend   Action = "sendRequest"
	ActionAccept Action = "acceptRequest"
	ActionReject Action = "rejectRequest"
	ActionDelete Action = "deleteFriendship"
	ActionCancel Action = "cancelRequest"
	ActionGet    Action = "get"
)

// transition returns the flags both rows must hold after the viewer performs
// action a while the relationship is in state cur. ok is false when the
// action does not mutate (get, or an unknown label).
func transition(a Action, cur State) (next Edges, ok bool) {
	switch a {
	case ActionSend:
		// Sending into a pending incoming request resolves straight to
		// friends instead of leaving two crossed requests.
		if cur == StateIncoming {
			return Edges{1, 1, 1, 1}, true
		}
		return Edges{1, 0, 0, 0}, true
	case ActionAccept:
		return Edges{1, 1, 1, 1}, true
	case ActionReject:
		return Edges{0, 1, 1, 0}, true
	case ActionDelete:
		return Edges{0, 1, 0, 0}, true
	case ActionCancel:
		return Edges{0, 0, 0, 0}, true
	}
	return Edges{}, false
}
