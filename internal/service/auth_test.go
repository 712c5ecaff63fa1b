package service

import (
	"context"
	"testing"
	"time"

	"github.com/commentboard/backend/internal/config"
	"github.com/commentboard/backend/internal/token"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
		ResetTokenTTL: time.Hour,
	}
}

func newTestAuthService(store *fakeStore) (*AuthService, *token.Codec) {
	cfg := testAuthConfig()
	codec := token.NewCodec(cfg)
	return NewAuthService(store, codec, cfg), codec
}

func TestSignupIssuesVerifiableTokens(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc, codec := newTestAuthService(store)
	ctx := context.Background()

	user, pair, err := svc.Signup(ctx, "Alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Signup error: %v", err)
	}

	userID, err := codec.Verify(pair.AccessToken, token.Access)
	if err != nil {
		t.Fatalf("access token verify: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("access token subject: got %d want %d", userID, user.ID)
	}

	if !user.CanRead || !user.CanWrite || user.CanDelete {
		t.Fatalf("unexpected default flags: %+v", user)
	}
	if len(store.refresh) != 1 {
		t.Fatalf("expected 1 stored refresh token, got %d", len(store.refresh))
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc, _ := newTestAuthService(store)
	ctx := context.Background()

	if _, _, err := svc.Signup(ctx, "Alice", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("first signup error: %v", err)
	}
	if _, _, err := svc.Signup(ctx, "Other", "alice@example.com", "secret2"); err != ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestConcurrentSignupSameEmail(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc, _ := newTestAuthService(store)
	ctx := context.Background()

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, _, err := svc.Signup(ctx, "Alice", "alice@example.com", "secret1")
			errs <- err
		}()
	}

	var ok, dup int
	for i := 0; i < 2; i++ {
		switch err := <-errs; err {
		case nil:
			ok++
		case ErrDuplicateEmail:
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || dup != 1 {
		t.Fatalf("expected exactly one winner, got ok=%d dup=%d", ok, dup)
	}
}

func TestLoginFailureIsIndistinguishable(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc, _ := newTestAuthService(store)
	ctx := context.Background()

	if _, _, err := svc.Signup(ctx, "Alice", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("signup error: %v", err)
	}

	_, _, wrongPassword := svc.Login(ctx, "alice@example.com", "wrong")
	_, _, unknownEmail := svc.Login(ctx, "nobody@example.com", "secret1")

	if wrongPassword != ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if unknownEmail != wrongPassword {
		t.Fatalf("errors differ: %v vs %v", unknownEmail, wrongPassword)
	}
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc, codec := newTestAuthService(store)
	ctx := context.Background()

	created, _, err := svc.Signup(ctx, "Alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("signup error: %v", err)
	}

	user, pair, err := svc.Login(ctx, "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("user mismatch: got %d want %d", user.ID, created.ID)
	}
	if userID, err := codec.Verify(pair.RefreshToken, token.Refresh); err != nil || userID != user.ID {
		t.Fatalf("refresh token verify: got %d, %v", userID, err)
	}
	// Second concurrent session; both tokens stay valid.
	if len(store.refresh) != 2 {
		t.Fatalf("expected 2 stored refresh tokens, got %d", len(store.refresh))
	}
}

func TestRefreshAfterLogout(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc, _ := newTestAuthService(store)
	ctx := context.Background()

	_, pair, err := svc.Signup(ctx, "Alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("signup error: %v", err)
	}

	if _, err := svc.Refresh(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("refresh before logout: %v", err)
	}

	if err := svc.Logout(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("Logout error: %v", err)
	}
	if _, err := svc.Refresh(ctx, pair.RefreshToken); err != ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken after logout, got %v", err)
	}

	// Logout of an already-removed token still succeeds.
	if err := svc.Logout(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("repeated logout: %v", err)
	}
}

func TestRefreshRejectsGarbage(t *testing.T) {
	t.Parallel()
	svc, _ := newTestAuthService(newFakeStore())
	ctx := context.Background()

	for _, tok := range []string{"", "  ", "garbage", "a.b.c"} {
		if _, err := svc.Refresh(ctx, tok); err != ErrInvalidRefreshToken {
			t.Fatalf("token %q: expected ErrInvalidRefreshToken, got %v", tok, err)
		}
	}
}

func TestRefreshRejectsExpiredStoreRecord(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc, _ := newTestAuthService(store)
	ctx := context.Background()

	_, pair, err := svc.Signup(ctx, "Alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("signup error: %v", err)
	}

	// Age the stored row past its expiry; the JWT itself is still valid.
	for _, record := range store.refresh {
		record.ExpiresAt = time.Now().Add(-time.Minute)
	}

	if _, err := svc.Refresh(ctx, pair.RefreshToken); err != ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken for expired record, got %v", err)
	}
}

func TestRefreshDoesNotRotate(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc, _ := newTestAuthService(store)
	ctx := context.Background()

	_, pair, err := svc.Signup(ctx, "Alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("signup error: %v", err)
	}

	if _, err := svc.Refresh(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	if _, err := svc.Refresh(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("second refresh with same token: %v", err)
	}
	if len(store.refresh) != 1 {
		t.Fatalf("refresh must not mint new refresh tokens, store has %d", len(store.refresh))
	}
}
