package repositories

import (
	"testing"

	"github.com/Mart1n-S/WatchListy-sub000/internal/testhelpers"
)

func newSocialRepo(t *testing.T) *SocialRepository {
	t.Helper()
	return &SocialRepository{DB: testhelpers.SetupTestDB(t)}
}

func TestSocialRepository_Follow(t *testing.T) {
	repo := newSocialRepo(t)

	if err := repo.Follow(1, 2); err != nil {
		t.Fatalf("Follow returned error: %v", err)
	}

	t.Run("repeat follow is a no-op", func(t *testing.T) {
		if err := repo.Follow(1, 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		n, err := repo.FollowingCount(1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 1 {
			t.Fatalf("expected a single edge, got %d", n)
		}
	})

	t.Run("edges are directional", func(t *testing.T) {
		n, err := repo.FollowingCount(2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 0 {
			t.Fatalf("expected no reverse edge, got %d", n)
		}
	})
}

func TestSocialRepository_Unfollow(t *testing.T) {
	repo := newSocialRepo(t)
	if err := repo.Follow(1, 2); err != nil {
		t.Fatalf("failed to seed edge: %v", err)
	}

	t.Run("removes the edge", func(t *testing.T) {
		if err := repo.Unfollow(1, 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ids, err := repo.FollowingIDs(1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(ids) != 0 {
			t.Fatalf("expected no edges, got %v", ids)
		}
	})

	t.Run("absent edge is a no-op", func(t *testing.T) {
		if err := repo.Unfollow(1, 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("edge can be recreated", func(t *testing.T) {
		if err := repo.Follow(1, 2); err != nil {
			t.Fatalf("expected re-follow to succeed, got %v", err)
		}
	})
}

func TestSocialRepository_FollowingIDs(t *testing.T) {
	repo := newSocialRepo(t)
	for _, followee := range []uint{5, 3, 8} {
		if err := repo.Follow(1, followee); err != nil {
			t.Fatalf("failed to seed edge: %v", err)
		}
	}
	if err := repo.Follow(2, 9); err != nil {
		t.Fatalf("failed to seed edge: %v", err)
	}

	ids, err := repo.FollowingIDs(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("expected 3 followees, got %d", len(ids))
	}
	// Oldest edge first.
	if ids[0] != 5 || ids[1] != 3 || ids[2] != 8 {
		t.Fatalf("unexpected order: %v", ids)
	}
}

func TestSocialRepository_ToggleLike(t *testing.T) {
	repo := newSocialRepo(t)

	t.Run("first toggle likes", func(t *testing.T) {
		liked, count, err := repo.ToggleLike(1, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !liked || count != 1 {
			t.Fatalf("expected liked=true count=1, got liked=%v count=%d", liked, count)
		}
	})

	t.Run("second toggle unlikes", func(t *testing.T) {
		liked, count, err := repo.ToggleLike(1, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if liked || count != 0 {
			t.Fatalf("expected liked=false count=0, got liked=%v count=%d", liked, count)
		}
	})

	t.Run("counts are per target", func(t *testing.T) {
		if _, _, err := repo.ToggleLike(1, 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, _, err := repo.ToggleLike(1, 3); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		liked, count, err := repo.ToggleLike(4, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !liked || count != 1 {
			t.Fatalf("expected liked=true count=1 for user 4, got liked=%v count=%d", liked, count)
		}
		n, err := repo.LikeCount(1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 2 {
			t.Fatalf("expected 2 likes for user 1, got %d", n)
		}
	})
}

func TestSocialRepository_HasLiked(t *testing.T) {
	repo := newSocialRepo(t)
	if _, _, err := repo.ToggleLike(1, 2); err != nil {
		t.Fatalf("failed to seed like: %v", err)
	}

	liked, err := repo.HasLiked(1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !liked {
		t.Fatalf("expected HasLiked to report true")
	}

	liked, err = repo.HasLiked(1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if liked {
		t.Fatalf("expected HasLiked to report false for non-liker")
	}
}
