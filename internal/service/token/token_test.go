package token

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront-admin/internal/models"
)

func newService(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	return &Service{DB: db, JWTSecret: []byte("test_secret")}
}

func createUser(t *testing.T, s *Service) *models.User {
	user := models.User{
		Name:         "Alice",
		Email:        "a@x.com",
		PasswordHash: "irrelevant",
		Role:         models.RoleUser,
	}
	require.NoError(t, s.DB.Create(&user).Error)
	return &user
}

func TestIssue(t *testing.T) {
	s := newService(t)
	user := createUser(t, s)

	pair, err := s.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := ParseAccess(pair.AccessToken, s.JWTSecret)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", claims.Email)
	require.Equal(t, string(models.RoleUser), claims.Role)
	require.Equal(t, "1", claims.Subject)
	require.WithinDuration(t, time.Now().Add(AccessTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestIssueGeneratesFreshRefreshTokens(t *testing.T) {
	s := newService(t)
	user := createUser(t, s)

	first, err := s.Issue(user)
	require.NoError(t, err)
	second, err := s.Issue(user)
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)
}

func TestParseAccessRejectsWrongSecret(t *testing.T) {
	s := newService(t)
	user := createUser(t, s)

	pair, err := s.Issue(user)
	require.NoError(t, err)

	_, err = ParseAccess(pair.AccessToken, []byte("other_secret"))
	require.Error(t, err)
}

func TestPersistAndLookup(t *testing.T) {
	s := newService(t)
	user := createUser(t, s)
	ctx := context.Background()

	_, err := s.UserByRefresh(ctx, "nope")
	require.ErrorIs(t, err, ErrRefreshNotFound)

	require.NoError(t, s.Persist(ctx, user.ID, "token-1"))
	found, err := s.UserByRefresh(ctx, "token-1")
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)

	// overwrite semantics: one live refresh token per user
	require.NoError(t, s.Persist(ctx, user.ID, "token-2"))
	_, err = s.UserByRefresh(ctx, "token-1")
	require.ErrorIs(t, err, ErrRefreshNotFound)
}

func TestRotate(t *testing.T) {
	s := newService(t)
	user := createUser(t, s)
	ctx := context.Background()

	require.NoError(t, s.Persist(ctx, user.ID, "old-token"))

	rotatedUser, pair, err := s.Rotate(ctx, "old-token")
	require.NoError(t, err)
	require.Equal(t, user.ID, rotatedUser.ID)
	require.NotEqual(t, "old-token", pair.RefreshToken)

	claims, err := ParseAccess(pair.AccessToken, s.JWTSecret)
	require.NoError(t, err)
	require.Equal(t, user.Email, claims.Email)
	require.Equal(t, string(user.Role), claims.Role)

	_, _, err = s.Rotate(ctx, "old-token")
	require.ErrorIs(t, err, ErrRefreshNotFound)

	found, err := s.UserByRefresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)
}
