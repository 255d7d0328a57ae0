package store

import (
	"testing"

	"github.com/google/uuid"

	"sweetcreations/internal/models"
)

func TestContactStoreLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewContactStore(db)

	email := uuid.NewString()[:8] + "@example.com"
	t.Cleanup(func() { cleanContacts(t, db, email) })

	created, err := s.Insert(&models.ContactMessage{
		Name:         "Test Inquirer",
		Email:        email,
		Phone:        "+1 555 0100",
		OccasionType: "Wedding",
		Message:      "Looking for a three-tier cake in June.",
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if created.Status != models.ContactStatusNew {
		t.Errorf("status: got %q, want %q", created.Status, models.ContactStatusNew)
	}

	// Status filter scopes the list.
	statusNew := models.ContactStatusNew
	items, total, err := s.List(&statusNew, 0, 50)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total < 1 {
		t.Error("expected at least one new inquiry")
	}
	for _, item := range items {
		if item.Status != models.ContactStatusNew {
			t.Errorf("status filter leaked %q", item.Status)
		}
	}

	updated, err := s.UpdateStatus(created.ID, models.ContactStatusReplied)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != models.ContactStatusReplied {
		t.Errorf("status: got %q, want replied", updated.Status)
	}

	ok, err := s.Delete(created.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !ok {
		t.Error("expected delete to report a removed row")
	}
}

func TestContactStoreUpdateStatusMissing(t *testing.T) {
	db := testDB(t)
	s := NewContactStore(db)

	updated, err := s.UpdateStatus(uuid.New(), models.ContactStatusRead)
	if err != nil {
		t.Fatalf("UpdateStatus (missing): %v", err)
	}
	if updated != nil {
		t.Error("expected nil for unknown id")
	}
}
