//go:build integration

package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linkboard/linkboard-api/internal/core/domain"
)

// These tests run against a disposable database:
//
//	LINKBOARD_TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/infrastructure/db/postgres
//
// Every table is truncated before each test.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("LINKBOARD_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("LINKBOARD_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := Connect(ctx, Config{URL: url, MaxConns: 4})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE votes, posts, users`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pool
}

func seedUser(t *testing.T, repo *UserRepository, username string) *domain.User {
	t.Helper()
	u, err := repo.Create(context.Background(), &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func seedPost(t *testing.T, repo *PostRepository, owner *domain.User, title string, at time.Time) *domain.Post {
	t.Helper()
	p := &domain.Post{ID: uuid.NewString(), Title: title, Content: "body", UserID: owner.ID, CreatedAt: at}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("create post %s: %v", title, err)
	}
	return p
}

func vote(t *testing.T, repo *VoteRepository, postID, userID string, vt domain.VoteType) error {
	t.Helper()
	now := time.Now().UTC()
	return repo.Upsert(context.Background(), &domain.Vote{PostID: postID, UserID: userID, Type: vt, CreatedAt: now, UpdatedAt: now})
}

func voteRows(t *testing.T, pool *pgxpool.Pool, postID string) int {
	t.Helper()
	var n int
	if err := pool.QueryRow(context.Background(), `SELECT count(*) FROM votes WHERE post_id = $1`, postID).Scan(&n); err != nil {
		t.Fatalf("count votes: %v", err)
	}
	return n
}

func TestUserRepository_Store(t *testing.T) {
	pool := openTestPool(t)
	users := NewUserRepository(pool)
	ctx := context.Background()

	alice := seedUser(t, users, "alice")

	if _, err := users.Create(ctx, &domain.User{ID: uuid.NewString(), Username: "alice", PasswordHash: "h", CreatedAt: time.Now()}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	found, err := users.FindByUsername(ctx, "alice")
	if err != nil || found.ID != alice.ID || found.PasswordHash != "hash" {
		t.Fatalf("unexpected lookup: %+v, %v", found, err)
	}
	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		if _, err := users.FindByID(ctx, id); !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("FindByID(%q): expected ErrUserNotFound, got %v", id, err)
		}
	}
}

func TestPostRepository_ScoresAndOrder(t *testing.T) {
	pool := openTestPool(t)
	users, posts, votes := NewUserRepository(pool), NewPostRepository(pool), NewVoteRepository(pool)

	alice := seedUser(t, users, "alice")
	voters := []*domain.User{alice, seedUser(t, users, "bob"), seedUser(t, users, "carol")}
	dave := seedUser(t, users, "dave")

	now := time.Now().UTC()
	older := seedPost(t, posts, alice, "older", now.Add(-time.Minute))
	newer := seedPost(t, posts, dave, "newer", now)

	for _, u := range voters {
		if err := vote(t, votes, older.ID, u.ID, domain.VoteUp); err != nil {
			t.Fatalf("vote: %v", err)
		}
	}
	if err := vote(t, votes, older.ID, dave.ID, domain.VoteDown); err != nil {
		t.Fatalf("vote: %v", err)
	}

	list, err := posts.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != newer.ID || list[1].ID != older.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}
	if list[0].Votes != 0 || list[0].Username != "dave" {
		t.Fatalf("unvoted post: %+v", list[0])
	}
	if list[1].Votes != 2 || list[1].Username != "alice" {
		t.Fatalf("expected score 2 by alice, got %+v", list[1])
	}

	// Re-voting overwrites in place; the latest type wins.
	for _, vt := range []domain.VoteType{domain.VoteUp, domain.VoteUp} {
		if err := vote(t, votes, older.ID, dave.ID, vt); err != nil {
			t.Fatalf("vote: %v", err)
		}
	}
	if n := voteRows(t, pool, older.ID); n != 4 {
		t.Fatalf("expected 4 vote rows, got %d", n)
	}
	list, err = posts.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list[1].Votes != 4 {
		t.Fatalf("expected score 4 after overwrite, got %d", list[1].Votes)
	}
}

func TestPostRepository_Ownership(t *testing.T) {
	pool := openTestPool(t)
	users, posts, votes := NewUserRepository(pool), NewPostRepository(pool), NewVoteRepository(pool)
	ctx := context.Background()

	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")
	p := seedPost(t, posts, alice, "hello", time.Now().UTC())
	if err := vote(t, votes, p.ID, bob.ID, domain.VoteUp); err != nil {
		t.Fatalf("vote: %v", err)
	}

	if _, err := posts.Update(ctx, p.ID, bob.ID, "x", "y"); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	for _, id := range []string{uuid.NewString(), "bogus"} {
		if _, err := posts.Update(ctx, id, alice.ID, "x", "y"); !errors.Is(err, domain.ErrPostNotFound) {
			t.Fatalf("Update(%q): expected ErrPostNotFound, got %v", id, err)
		}
	}

	updated, err := posts.Update(ctx, p.ID, alice.ID, "hello2", "")
	if err != nil || updated.Title != "hello2" || updated.Content != "" || updated.UserID != alice.ID {
		t.Fatalf("unexpected update: %+v, %v", updated, err)
	}

	if err := posts.Delete(ctx, p.ID, bob.ID); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if err := posts.Delete(ctx, p.ID, alice.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n := voteRows(t, pool, p.ID); n != 0 {
		t.Fatalf("votes must be deleted with the post, %d left", n)
	}
	if err := posts.Delete(ctx, p.ID, alice.ID); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}

	for _, id := range []string{p.ID, "bogus"} {
		if err := vote(t, votes, id, bob.ID, domain.VoteUp); !errors.Is(err, domain.ErrPostNotFound) {
			t.Fatalf("vote on %q: expected ErrPostNotFound, got %v", id, err)
		}
	}
}
