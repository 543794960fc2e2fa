package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"nexthire/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	timeNow = time.Now
	newJTI  = uuid.NewString
)

// Claims JWT 負載：subject 為使用者 id，另附 user_id、email
type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Revoker 登出黑名單，由 cache.Blocklist 實作
type Revoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Tokens 簽發與驗證 access token
type Tokens struct {
	secret  []byte
	ttl     time.Duration
	revoker Revoker
}

// NewTokens revoker 可為 nil，此時不支援登出撤銷
func NewTokens(secret string, ttl time.Duration, revoker Revoker) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, revoker: revoker}
}

// Issue 依據使用者資訊產生 HS256 JWT
func (t *Tokens) Issue(u *model.User) (string, error) {
	if len(t.secret) == 0 {
		return "", fmt.Errorf("token secret not set")
	}
	now := timeNow()
	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newJTI(),
			Subject:   strconv.Itoa(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify 驗證 token；失敗時回傳 KindTokenMissing / Expired / Invalid / Revoked
func (t *Tokens) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, tokenError(KindTokenMissing, "authorization token is required", nil)
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(timeNow),
		jwt.WithExpirationRequired(),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, tokenError(KindTokenExpired, "token has expired", err)
	case err != nil:
		return nil, tokenError(KindTokenInvalid, "invalid token", err)
	}

	if sub, err := strconv.Atoi(claims.Subject); err != nil || sub <= 0 || sub != claims.UserID {
		return nil, tokenError(KindTokenInvalid, "invalid token", fmt.Errorf("subject %q does not match user_id %d", claims.Subject, claims.UserID))
	}

	if t.revoker != nil && claims.ID != "" {
		revoked, err := t.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, storageError(err)
		}
		if revoked {
			return nil, tokenError(KindTokenRevoked, "token has been revoked", nil)
		}
	}
	return claims, nil
}

// Revoke 將 token 列入黑名單直到其原本的到期時間
func (t *Tokens) Revoke(ctx context.Context, c *Claims) error {
	if t.revoker == nil || c.ID == "" || c.ExpiresAt == nil {
		return nil
	}
	if err := t.revoker.Revoke(ctx, c.ID, c.ExpiresAt.Time); err != nil {
		return storageError(err)
	}
	return nil
}
