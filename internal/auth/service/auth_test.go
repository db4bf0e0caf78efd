package service

import (
	"context"
	"testing"
	"time"

	"github.com/dev-gonzo/system-rpg-backend-sub000/internal/auth/domain"
	"github.com/dev-gonzo/system-rpg-backend-sub000/internal/auth/store/drivers/sqlite"
	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/cryptox"
	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/jwtx"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testPassword = "correct horse battery staple"

func newTestAuthService(t *testing.T) (*AuthService, *sqlite.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	key, err := cryptox.GenerateRSAKey(2048)
	require.NoError(t, err)
	signer, err := jwtx.NewSignerRS256("svc-test-kid", key)
	require.NoError(t, err)
	codec, err := jwtx.NewCodec(signer, jwtx.NewVerifierRS256("svc-test-kid", &key.PublicKey))
	require.NoError(t, err)

	return &AuthService{
		Codec:      codec,
		Users:      st.Users(),
		Revoked:    st.RevokedTokens(),
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}, st
}

func seedUser(t *testing.T, st *sqlite.Store, mutate func(*domain.User)) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(testPassword)
	require.NoError(t, err)

	u := domain.User{
		ID:           uuid.NewString(),
		Username:     "alice",
		Email:        "alice@example.com",
		FirstName:    "Alice",
		LastName:     "Silva",
		PasswordHash: hash,
		Roles:        []string{"USER"},
		IsActive:     true,
	}
	if mutate != nil {
		mutate(&u)
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, st := newTestAuthService(t)
	ctx := context.Background()
	user := seedUser(t, st, nil)

	result, err := svc.Login(ctx, "alice", testPassword)
	require.NoError(t, err)

	require.Equal(t, "Bearer", result.TokenType)
	require.Equal(t, int64(900), result.ExpiresIn)
	require.Equal(t, user.ID, result.User.ID)
	require.Equal(t, "Alice Silva", result.User.FullName)

	claims, err := svc.Codec.Decode(result.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, jwtx.KindAccess, claims.Kind)
	require.Equal(t, []string{"USER"}, claims.Roles)

	refreshClaims, err := svc.Codec.Decode(result.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, jwtx.KindRefresh, refreshClaims.Kind)

	// Login stamps last_login_at.
	stored, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, st := newTestAuthService(t)
	ctx := context.Background()
	seedUser(t, st, nil)

	t.Run("unknown username", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost", testPassword)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	svc, st := newTestAuthService(t)
	seedUser(t, st, func(u *domain.User) { u.IsActive = false })

	_, err := svc.Login(context.Background(), "alice", testPassword)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesPair(t *testing.T) {
	svc, st := newTestAuthService(t)
	ctx := context.Background()
	seedUser(t, st, nil)

	first, err := svc.Login(ctx, "alice", testPassword)
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, first.RefreshToken, first.AccessToken)
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)
	require.NotEqual(t, first.AccessToken, second.AccessToken)

	t.Run("old refresh token is single-use", func(t *testing.T) {
		_, err := svc.Refresh(ctx, first.RefreshToken, "")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("old access token is blacklisted", func(t *testing.T) {
		out := svc.Introspect(ctx, first.AccessToken)
		require.False(t, out.Active)
		require.Equal(t, "token is blacklisted", out.Error)
	})

	t.Run("new pair still works", func(t *testing.T) {
		out := svc.Introspect(ctx, second.AccessToken)
		require.True(t, out.Active)

		_, err := svc.Refresh(ctx, second.RefreshToken, "")
		require.NoError(t, err)
	})
}

func TestRefreshToleratesGarbageOldAccessToken(t *testing.T) {
	svc, st := newTestAuthService(t)
	ctx := context.Background()
	seedUser(t, st, nil)

	first, err := svc.Login(ctx, "alice", testPassword)
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, first.RefreshToken, "not-a-jwt")
	require.NoError(t, err)
}

func TestRefreshRejectsAccessTokenAsRefresh(t *testing.T) {
	svc, st := newTestAuthService(t)
	ctx := context.Background()
	seedUser(t, st, nil)

	result, err := svc.Login(ctx, "alice", testPassword)
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, result.AccessToken, "")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Refresh(context.Background(), "garbage", "")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutBlacklistsAccessToken(t *testing.T) {
	svc, st := newTestAuthService(t)
	ctx := context.Background()
	seedUser(t, st, nil)

	result, err := svc.Login(ctx, "alice", testPassword)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.AccessToken))

	out := svc.Introspect(ctx, result.AccessToken)
	require.False(t, out.Active)
	require.Equal(t, "token is blacklisted", out.Error)

	// Logging out twice is harmless.
	require.NoError(t, svc.Logout(ctx, result.AccessToken))
}

func TestLogoutRejectsGarbage(t *testing.T) {
	svc, _ := newTestAuthService(t)

	err := svc.Logout(context.Background(), "garbage")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRejectsExpiredToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	claims := jwtx.NewAccessClaims("alice", uuid.NewString(), "", "", nil,
		-time.Minute, time.Now().UTC())
	token, err := svc.Codec.Encode(claims)
	require.NoError(t, err)

	err = svc.Logout(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
