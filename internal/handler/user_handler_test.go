package handler

import (
	"testing"

	"linkfolio/backend/internal/models"
)

func TestProfileUpdates(t *testing.T) {
	user := models.User{Nickname: "casey", Bio: "hello there"}
	empty := ""
	newBio := "new bio"

	// An omitted bio must not clear the stored one.
	updates := profileUpdates(user, UpdateUserInput{Nickname: "casey2"})
	if _, ok := updates["bio"]; ok {
		t.Fatalf("omitted bio produced an update: %+v", updates)
	}
	if updates["nickname"] != "casey2" {
		t.Fatalf("nickname update missing: %+v", updates)
	}

	// An explicit empty bio clears it.
	updates = profileUpdates(user, UpdateUserInput{Bio: &empty})
	if v, ok := updates["bio"]; !ok || v != "" {
		t.Fatalf("explicit empty bio not applied: %+v", updates)
	}

	// A changed bio is applied.
	updates = profileUpdates(user, UpdateUserInput{Bio: &newBio})
	if updates["bio"] != "new bio" {
		t.Fatalf("bio update missing: %+v", updates)
	}

	// Unchanged nickname and omitted fields produce no updates at all.
	updates = profileUpdates(user, UpdateUserInput{Nickname: "casey"})
	if len(updates) != 0 {
		t.Fatalf("no-op input produced updates: %+v", updates)
	}
}
