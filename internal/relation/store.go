package relation

import (
	"linkfolio/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store reads and mutates the two directional friendship rows of a user pair.
// Both rows are always written inside one transaction so that a partial write
// can never commit an unrepresentable flag pattern.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Current resolves the state between viewer and peer without mutating.
func (s *Store) Current(viewerID, peerID uint) (State, error) {
	edges, found, err := s.edges(s.db, viewerID, peerID, false)
	if err != nil {
		return StateNone, err
	}
	if !found {
		return StateNone, nil
	}
	return Resolve(edges), nil
}

// Apply performs action a by viewer toward peer. On any storage failure the
// transaction rolls back and the prior state is returned together with the
// error, so the caller can report "no change applied".
func (s *Store) Apply(a Action, viewerID, peerID uint) (State, error) {
	prior, err := s.Current(viewerID, peerID)
	if err != nil {
		return StateNone, err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return prior, tx.Error
	}

	// Serialize every transition on this pair, including the very first:
	// row locks cannot cover rows that do not exist yet, so two crossed
	// sendRequests would otherwise both read empty and overwrite each
	// other. The lock is released at commit/rollback.
	lo, hi := pairKey(viewerID, peerID)
	if err := tx.Exec("SELECT pg_advisory_xact_lock(?, ?)", lo, hi).Error; err != nil {
		tx.Rollback()
		return prior, err
	}

	edges, found, err := s.edges(tx, viewerID, peerID, true)
	if err != nil {
		tx.Rollback()
		return prior, err
	}

	cur := StateNone
	if found {
		cur = Resolve(edges)
	}

	next, ok := transition(a, cur)
	if !ok {
		tx.Rollback()
		return cur, nil
	}

	if err := upsertEdge(tx, viewerID, peerID, next.Req, next.Res); err != nil {
		tx.Rollback()
		return cur, err
	}
	if err := upsertEdge(tx, peerID, viewerID, next.PeerReq, next.PeerRes); err != nil {
		tx.Rollback()
		return cur, err
	}

	if err := tx.Commit().Error; err != nil {
		return cur, err
	}
	return Resolve(next), nil
}

// edges loads both directional rows of the pair. With lock set the rows are
// read FOR UPDATE so concurrent transitions on the same pair serialize.
func (s *Store) edges(db *gorm.DB, viewerID, peerID uint, lock bool) (Edges, bool, error) {
	var rows []models.Friendship
	query := db.Where(
		"(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
		viewerID, peerID, peerID, viewerID,
	)
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.Find(&rows).Error; err != nil {
		return Edges{}, false, err
	}

	var e Edges
	for _, r := range rows {
		if r.FromUserID == viewerID {
			e.Req, e.Res = r.Request, r.Response
		} else {
			e.PeerReq, e.PeerRes = r.Request, r.Response
		}
	}
	return e, len(rows) > 0, nil
}

func upsertEdge(tx *gorm.DB, fromID, toID uint, req, res int) error {
	row := models.Friendship{FromUserID: fromID, ToUserID: toID, Request: req, Response: res}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "from_user_id"}, {Name: "to_user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"request", "response", "updated_at"}),
	}).Create(&row).Error
}

// pairKey orders the two user IDs so both directions of a pair contend on
// the same advisory lock.
func pairKey(a, b uint) (int32, int32) {
	if a > b {
		a, b = b, a
	}
	return int32(a), int32(b)
}

// Friends reports whether viewer and peer are mutually accepted.
func (s *Store) Friends(viewerID, peerID uint) (bool, error) {
	state, err := s.Current(viewerID, peerID)
	return state == StateFriends, err
}
