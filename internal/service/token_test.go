package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"github.com/dlwnsgus777/my-mandalateu/internal/model"
	"github.com/dlwnsgus777/my-mandalateu/pkg/jwt"
)

// ============================================================================
// Mock Token Repository
// ============================================================================

type mockTokenRepo struct {
	createRefreshTokenFunc    func(ctx context.Context, token *RefreshToken) error
	getRefreshTokenByHashFunc func(ctx context.Context, hash string) (*RefreshToken, error)
	revokeRefreshTokenFunc    func(ctx context.Context, hash string) error
	revokeAllUserTokensFunc   func(ctx context.Context, userID string) error
	deleteExpiredTokensFunc   func(ctx context.Context) error
}

func (m *mockTokenRepo) CreateRefreshToken(ctx context.Context, token *RefreshToken) error {
	if m.createRefreshTokenFunc != nil {
		return m.createRefreshTokenFunc(ctx, token)
	}
	return nil
}

func (m *mockTokenRepo) GetRefreshTokenByHash(ctx context.Context, hash string) (*RefreshToken, error) {
	if m.getRefreshTokenByHashFunc != nil {
		return m.getRefreshTokenByHashFunc(ctx, hash)
	}
	return nil, nil
}

func (m *mockTokenRepo) RevokeRefreshToken(ctx context.Context, hash string) error {
	if m.revokeRefreshTokenFunc != nil {
		return m.revokeRefreshTokenFunc(ctx, hash)
	}
	return nil
}

func (m *mockTokenRepo) RevokeAllUserTokens(ctx context.Context, userID string) error {
	if m.revokeAllUserTokensFunc != nil {
		return m.revokeAllUserTokensFunc(ctx, userID)
	}
	return nil
}

func (m *mockTokenRepo) DeleteExpiredTokens(ctx context.Context) error {
	if m.deleteExpiredTokensFunc != nil {
		return m.deleteExpiredTokensFunc(ctx)
	}
	return nil
}

// ============================================================================
// Test Helpers
// ============================================================================

func newTokenService(t *testing.T, repo TokenRepository) *TokenService {
	t.Helper()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	return NewTokenService(TokenServiceConfig{
		JWTService:      jwt.NewTestService(privateKey, "mandalateu", 15*time.Minute),
		TokenRepo:       repo,
		RefreshDuration: 30 * 24 * time.Hour,
	})
}

func aliceUser() *model.User {
	return &model.User{
		ID:       "users:alice",
		Email:    "alice@mandalateu.app",
		Nickname: "alice",
	}
}

// ============================================================================
// GenerateTokenPair Tests
// ============================================================================

func TestTokenService_GenerateTokenPair_IssuesUsableAccessToken(t *testing.T) {
	t.Parallel()

	var stored *RefreshToken
	repo := &mockTokenRepo{
		createRefreshTokenFunc: func(ctx context.Context, token *RefreshToken) error {
			stored = token
			return nil
		},
	}
	svc := newTokenService(t, repo)

	pair, err := svc.GenerateTokenPair(context.Background(), aliceUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	if pair.TokenType != "Bearer" {
		t.Errorf("expected Bearer token type, got %q", pair.TokenType)
	}
	if pair.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("expected expires_in 900, got %d", pair.ExpiresIn)
	}

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("issued access token should validate: %v", err)
	}
	if claims.UserID != "users:alice" {
		t.Errorf("expected user ID users:alice, got %q", claims.UserID)
	}
	if claims.Email != "alice@mandalateu.app" {
		t.Errorf("expected email alice@mandalateu.app, got %q", claims.Email)
	}
	if claims.Nickname != "alice" {
		t.Errorf("expected nickname alice, got %q", claims.Nickname)
	}

	if stored == nil {
		t.Fatal("refresh token should be persisted")
	}
	if stored.UserID != "users:alice" {
		t.Errorf("stored token user = %q, want users:alice", stored.UserID)
	}
	if stored.Revoked {
		t.Error("new refresh token must not be revoked")
	}
}

func TestTokenService_GenerateTokenPair_StoresHashNotToken(t *testing.T) {
	t.Parallel()

	var stored *RefreshToken
	repo := &mockTokenRepo{
		createRefreshTokenFunc: func(ctx context.Context, token *RefreshToken) error {
			stored = token
			return nil
		},
	}
	svc := newTokenService(t, repo)

	pair, err := svc.GenerateTokenPair(context.Background(), aliceUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	if stored.TokenHash == pair.RefreshToken {
		t.Error("refresh token must be stored hashed, not in plaintext")
	}
	if stored.TokenHash != hashToken(pair.RefreshToken) {
		t.Error("stored hash should match the SHA-256 of the issued token")
	}
}

func TestTokenService_GenerateTokenPair_RefreshTokensAreUnique(t *testing.T) {
	t.Parallel()

	svc := newTokenService(t, &mockTokenRepo{})

	first, err := svc.GenerateTokenPair(context.Background(), aliceUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	second, err := svc.GenerateTokenPair(context.Background(), aliceUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	if first.RefreshToken == second.RefreshToken {
		t.Error("each login must issue a distinct refresh token")
	}
}

func TestTokenService_GenerateTokenPair_RepoError(t *testing.T) {
	t.Parallel()

	repoErr := errors.New("surrealdb unavailable")
	repo := &mockTokenRepo{
		createRefreshTokenFunc: func(ctx context.Context, token *RefreshToken) error {
			return repoErr
		},
	}
	svc := newTokenService(t, repo)

	if _, err := svc.GenerateTokenPair(context.Background(), aliceUser()); !errors.Is(err, repoErr) {
		t.Errorf("expected repo error, got %v", err)
	}
}

// ============================================================================
// RefreshTokens Tests
// ============================================================================

func TestTokenService_RefreshTokens_RotatesSingleUseToken(t *testing.T) {
	t.Parallel()

	var revokedHash string
	repo := &mockTokenRepo{
		getRefreshTokenByHashFunc: func(ctx context.Context, hash string) (*RefreshToken, error) {
			return &RefreshToken{
				UserID:    "users:alice",
				TokenHash: hash,
				ExpiresAt: time.Now().Add(24 * time.Hour),
			}, nil
		},
		revokeRefreshTokenFunc: func(ctx context.Context, hash string) error {
			revokedHash = hash
			return nil
		},
	}
	svc := newTokenService(t, repo)

	pair, err := svc.RefreshTokens(context.Background(), "old-refresh-token", aliceUser())
	if err != nil {
		t.Fatalf("RefreshTokens failed: %v", err)
	}

	if revokedHash != hashToken("old-refresh-token") {
		t.Error("old token should be revoked on rotation")
	}
	if pair.RefreshToken == "old-refresh-token" {
		t.Error("rotation must issue a new refresh token")
	}
	if _, err := svc.ValidateAccessToken(pair.AccessToken); err != nil {
		t.Errorf("rotated access token should validate: %v", err)
	}
}

func TestTokenService_RefreshTokens_UnknownToken(t *testing.T) {
	t.Parallel()

	repo := &mockTokenRepo{
		getRefreshTokenByHashFunc: func(ctx context.Context, hash string) (*RefreshToken, error) {
			return nil, errors.New("token not found")
		},
	}
	svc := newTokenService(t, repo)

	if _, err := svc.RefreshTokens(context.Background(), "never-issued", aliceUser()); err != ErrInvalidRefreshToken {
		t.Errorf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestTokenService_RefreshTokens_NilStoredToken(t *testing.T) {
	t.Parallel()

	svc := newTokenService(t, &mockTokenRepo{})

	if _, err := svc.RefreshTokens(context.Background(), "never-issued", aliceUser()); err != ErrInvalidRefreshToken {
		t.Errorf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestTokenService_RefreshTokens_ReuseRevokesAllUserTokens(t *testing.T) {
	t.Parallel()

	var revokedUser string
	repo := &mockTokenRepo{
		getRefreshTokenByHashFunc: func(ctx context.Context, hash string) (*RefreshToken, error) {
			return &RefreshToken{
				UserID:    "users:alice",
				TokenHash: hash,
				ExpiresAt: time.Now().Add(24 * time.Hour),
				Revoked:   true,
			}, nil
		},
		revokeAllUserTokensFunc: func(ctx context.Context, userID string) error {
			revokedUser = userID
			return nil
		},
	}
	svc := newTokenService(t, repo)

	if _, err := svc.RefreshTokens(context.Background(), "replayed-token", aliceUser()); err != ErrRefreshTokenRevoked {
		t.Errorf("expected ErrRefreshTokenRevoked, got %v", err)
	}
	if revokedUser != "users:alice" {
		t.Error("reuse of a revoked token should revoke every session for the user")
	}
}

func TestTokenService_RefreshTokens_Expired(t *testing.T) {
	t.Parallel()

	repo := &mockTokenRepo{
		getRefreshTokenByHashFunc: func(ctx context.Context, hash string) (*RefreshToken, error) {
			return &RefreshToken{
				UserID:    "users:alice",
				TokenHash: hash,
				ExpiresAt: time.Now().Add(-time.Hour),
			}, nil
		},
	}
	svc := newTokenService(t, repo)

	if _, err := svc.RefreshTokens(context.Background(), "stale-token", aliceUser()); err != ErrRefreshTokenExpired {
		t.Errorf("expected ErrRefreshTokenExpired, got %v", err)
	}
}

func TestTokenService_RefreshTokens_RevokeFailureAborts(t *testing.T) {
	t.Parallel()

	revokeErr := errors.New("surrealdb unavailable")
	repo := &mockTokenRepo{
		getRefreshTokenByHashFunc: func(ctx context.Context, hash string) (*RefreshToken, error) {
			return &RefreshToken{
				UserID:    "users:alice",
				TokenHash: hash,
				ExpiresAt: time.Now().Add(24 * time.Hour),
			}, nil
		},
		revokeRefreshTokenFunc: func(ctx context.Context, hash string) error {
			return revokeErr
		},
	}
	svc := newTokenService(t, repo)

	if _, err := svc.RefreshTokens(context.Background(), "some-token", aliceUser()); !errors.Is(err, revokeErr) {
		t.Errorf("expected revoke error, got %v", err)
	}
}

// ============================================================================
// ValidateAccessToken Tests
// ============================================================================

func TestTokenService_ValidateAccessToken_RejectsGarbage(t *testing.T) {
	t.Parallel()

	svc := newTokenService(t, &mockTokenRepo{})

	if _, err := svc.ValidateAccessToken("not-a-jwt"); err == nil {
		t.Error("expected validation to fail")
	}
}

// ============================================================================
// Revocation and Cleanup Tests
// ============================================================================

func TestTokenService_RevokeAllUserTokens(t *testing.T) {
	t.Parallel()

	var revokedUser string
	repo := &mockTokenRepo{
		revokeAllUserTokensFunc: func(ctx context.Context, userID string) error {
			revokedUser = userID
			return nil
		},
	}
	svc := newTokenService(t, repo)

	if err := svc.RevokeAllUserTokens(context.Background(), "users:alice"); err != nil {
		t.Fatalf("RevokeAllUserTokens failed: %v", err)
	}
	if revokedUser != "users:alice" {
		t.Errorf("expected users:alice revoked, got %q", revokedUser)
	}
}

func TestTokenService_CleanupExpiredTokens(t *testing.T) {
	t.Parallel()

	called := false
	repo := &mockTokenRepo{
		deleteExpiredTokensFunc: func(ctx context.Context) error {
			called = true
			return nil
		},
	}
	svc := newTokenService(t, repo)

	if err := svc.CleanupExpiredTokens(context.Background()); err != nil {
		t.Fatalf("CleanupExpiredTokens failed: %v", err)
	}
	if !called {
		t.Error("expected expired tokens to be deleted")
	}
}

func TestNewTokenService_DefaultRefreshDuration(t *testing.T) {
	t.Parallel()

	svc := NewTokenService(TokenServiceConfig{TokenRepo: &mockTokenRepo{}})
	if svc.refreshDuration != 30*24*time.Hour {
		t.Errorf("expected 30 day default, got %v", svc.refreshDuration)
	}
}
