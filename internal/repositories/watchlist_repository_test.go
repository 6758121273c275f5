package repositories

import (
	"errors"
	"testing"
	"time"

	"github.com/Mart1n-S/WatchListy-sub000/internal/models"
	"github.com/Mart1n-S/WatchListy-sub000/internal/testhelpers"
)

func newWatchlistRepo(t *testing.T) *WatchlistRepository {
	t.Helper()
	return &WatchlistRepository{DB: testhelpers.SetupTestDB(t)}
}

func TestWatchlistRepository_Add(t *testing.T) {
	repo := newWatchlistRepo(t)

	entry := &models.UserMovie{UserID: 1, ItemID: 603, ItemType: models.MediaMovie, Status: models.StatusWatchlist}
	if err := repo.Add(entry); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if entry.ID == 0 {
		t.Fatalf("expected entry ID to be set")
	}

	t.Run("duplicate triple rejected", func(t *testing.T) {
		dup := &models.UserMovie{UserID: 1, ItemID: 603, ItemType: models.MediaMovie, Status: models.StatusWatching}
		if err := repo.Add(dup); !errors.Is(err, ErrEntryExists) {
			t.Fatalf("expected ErrEntryExists, got %v", err)
		}
		entries, err := repo.ListByUser(1, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected exactly one entry, got %d", len(entries))
		}
	})

	t.Run("same item as tv show is a distinct entry", func(t *testing.T) {
		other := &models.UserMovie{UserID: 1, ItemID: 603, ItemType: models.MediaTV, Status: models.StatusWatchlist}
		if err := repo.Add(other); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestWatchlistRepository_SetStatus(t *testing.T) {
	repo := newWatchlistRepo(t)
	entry := &models.UserMovie{UserID: 2, ItemID: 550, ItemType: models.MediaMovie, Status: models.StatusWatchlist}
	if err := repo.Add(entry); err != nil {
		t.Fatalf("failed to seed entry: %v", err)
	}

	t.Run("not found", func(t *testing.T) {
		if _, err := repo.SetStatus(2, 999, models.MediaMovie, models.StatusWatching); !errors.Is(err, ErrEntryNotFound) {
			t.Fatalf("expected ErrEntryNotFound, got %v", err)
		}
	})

	t.Run("every transition is legal", func(t *testing.T) {
		statuses := []models.WatchStatus{
			models.StatusWatching, models.StatusCompleted,
			models.StatusWatchlist, models.StatusCompleted,
			models.StatusWatching, models.StatusWatchlist,
		}
		for _, s := range statuses {
			got, err := repo.SetStatus(2, 550, models.MediaMovie, s)
			if err != nil {
				t.Fatalf("transition to %s failed: %v", s, err)
			}
			if got.Status != s {
				t.Fatalf("expected status %s, got %s", s, got.Status)
			}
			if got.ID != entry.ID {
				t.Fatalf("expected transition to keep entry %d, got %d", entry.ID, got.ID)
			}
		}
		entries, err := repo.ListByUser(2, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("setStatus must never create a second entry, got %d", len(entries))
		}
	})

	t.Run("bumps updatedAt", func(t *testing.T) {
		before, err := repo.SetStatus(2, 550, models.MediaMovie, models.StatusWatching)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
		after, err := repo.SetStatus(2, 550, models.MediaMovie, models.StatusCompleted)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !after.UpdatedAt.After(before.UpdatedAt) {
			t.Fatalf("expected UpdatedAt to advance")
		}
	})
}

func TestWatchlistRepository_Remove(t *testing.T) {
	repo := newWatchlistRepo(t)
	entry := &models.UserMovie{UserID: 3, ItemID: 603, ItemType: models.MediaMovie}
	if err := repo.Add(entry); err != nil {
		t.Fatalf("failed to seed entry: %v", err)
	}

	t.Run("not found", func(t *testing.T) {
		if err := repo.Remove(3, 999, models.MediaMovie); !errors.Is(err, ErrEntryNotFound) {
			t.Fatalf("expected ErrEntryNotFound, got %v", err)
		}
	})

	t.Run("success and re-add", func(t *testing.T) {
		if err := repo.Remove(3, 603, models.MediaMovie); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		entries, err := repo.ListByUser(3, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 0 {
			t.Fatalf("expected empty list, got %d entries", len(entries))
		}
		// The unique index must be free again.
		again := &models.UserMovie{UserID: 3, ItemID: 603, ItemType: models.MediaMovie}
		if err := repo.Add(again); err != nil {
			t.Fatalf("expected re-add to succeed, got %v", err)
		}
	})
}

func TestWatchlistRepository_ListByUser(t *testing.T) {
	repo := newWatchlistRepo(t)
	seed := []models.UserMovie{
		{UserID: 4, ItemID: 1, ItemType: models.MediaMovie, Status: models.StatusWatchlist},
		{UserID: 4, ItemID: 2, ItemType: models.MediaMovie, Status: models.StatusCompleted},
		{UserID: 4, ItemID: 3, ItemType: models.MediaTV, Status: models.StatusWatchlist},
		{UserID: 5, ItemID: 1, ItemType: models.MediaMovie, Status: models.StatusWatchlist},
	}
	for i := range seed {
		if err := repo.Add(&seed[i]); err != nil {
			t.Fatalf("failed to seed entry %d: %v", i, err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	t.Run("scoped to user", func(t *testing.T) {
		entries, err := repo.ListByUser(4, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
	})

	t.Run("status filter", func(t *testing.T) {
		entries, err := repo.ListByUser(4, models.StatusWatchlist)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 watchlist entries, got %d", len(entries))
		}
	})

	t.Run("recently touched first", func(t *testing.T) {
		if _, err := repo.SetStatus(4, 1, models.MediaMovie, models.StatusWatching); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		entries, err := repo.ListByUser(4, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entries[0].ItemID != 1 {
			t.Fatalf("expected the just-touched entry first, got item %d", entries[0].ItemID)
		}
	})
}
