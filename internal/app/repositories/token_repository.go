package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RefreshToken is a stored opaque refresh token
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	Revoked   bool
}

// TokenRepository stores refresh tokens server side so they can be revoked
type TokenRepository interface {
	Store(ctx context.Context, token *RefreshToken) error
	Get(ctx context.Context, token string) (*RefreshToken, error)
	Revoke(ctx context.Context, token string) error
}

type tokenRepository struct {
	db *pgxpool.Pool
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *pgxpool.Pool) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Store(ctx context.Context, token *RefreshToken) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO refresh_tokens (token, user_id, expires_at, revoked)
		VALUES ($1, $2, $3, FALSE)`,
		token.Token, token.UserID, token.ExpiresAt)
	return err
}

func (r *tokenRepository) Get(ctx context.Context, token string) (*RefreshToken, error) {
	var t RefreshToken
	err := r.db.QueryRow(ctx, `
		SELECT token, user_id, expires_at, revoked
		FROM refresh_tokens WHERE token = $1`,
		token).Scan(&t.Token, &t.UserID, &t.ExpiresAt, &t.Revoked)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tokenRepository) Revoke(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE refresh_tokens SET revoked = TRUE WHERE token = $1`, token)
	return err
}
