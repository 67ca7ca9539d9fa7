package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront-admin/internal/models"
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

var ErrRefreshNotFound = errors.New("refresh token not found")

type Service struct {
	DB        *gorm.DB
	JWTSecret []byte
}

type Pair struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

// Issue mints a signed access token and a fresh opaque refresh token for the
// user. The refresh token is not persisted here; call Persist with it.
func (s *Service) Issue(user *models.User) (*Pair, error) {
	accessExp := time.Now().Add(AccessTTL)
	claims := AccessClaims{
		Email: user.Email,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			ExpiresAt: jwt.NewNumericDate(accessExp),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	access, err := t.SignedString(s.JWTSecret)
	if err != nil {
		return nil, err
	}

	return &Pair{
		AccessToken:  access,
		RefreshToken: uuid.NewString(),
		AccessExp:    accessExp,
		RefreshExp:   time.Now().Add(RefreshTTL),
	}, nil
}

// Persist overwrites the user's stored refresh token. One live token per
// user; concurrent refreshes race as last-write-wins.
func (s *Service) Persist(ctx context.Context, userID uint, refresh string) error {
	result := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("refresh_token", refresh)
	if result.Error != nil {
		return fmt.Errorf("db error: %w", result.Error)
	}
	return nil
}

func (s *Service) UserByRefresh(ctx context.Context, raw string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("refresh_token = ?", raw).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &user, nil
}

// Rotate exchanges a stored refresh token for a new token pair and
// overwrites the stored value.
func (s *Service) Rotate(ctx context.Context, raw string) (*models.User, *Pair, error) {
	user, err := s.UserByRefresh(ctx, raw)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.Issue(user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.Persist(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}
