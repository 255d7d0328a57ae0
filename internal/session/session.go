// Package session provides bearer-token admin sessions. A token is a signed
// JWT whose ID (jti) must also be live in Valkey: signature and expiry prove
// the token was issued by us, the Valkey entry makes logout an actual
// revocation instead of a client-side fiction.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"sweetcreations/internal/models"
)

const (
	// DefaultTTL is how long a session lives before automatic expiry.
	DefaultTTL = 24 * time.Hour

	// keyPrefix namespaces session keys in Valkey to avoid collisions.
	keyPrefix = "session:"
)

// ErrInvalid is returned for credentials that fail validation for any
// expected reason: bad signature, expired, or revoked.
var ErrInvalid = errors.New("invalid session credential")

// Data is the identity carried by a validated session.
type Data struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsAdmin reports whether the session belongs to an admin account.
func (d *Data) IsAdmin() bool {
	return d.Role == string(models.RoleAdmin)
}

// claims is the JWT payload for a session token.
type claims struct {
	Email       string `json:"email"`
	DisplayName string `json:"name"`
	Role        string `json:"role"`
	jwt.RegisteredClaims
}

// Store manages session token lifecycle in Valkey.
type Store struct {
	client *redis.Client
	secret []byte
	ttl    time.Duration
}

// NewStore creates a session store backed by the given Valkey client,
// signing tokens with the given secret.
func NewStore(client *redis.Client, secret []byte) *Store {
	return &Store{
		client: client,
		secret: secret,
		ttl:    DefaultTTL,
	}
}

// ConnectValkey creates a Valkey client and verifies the connection with a ping.
func ConnectValkey(host, port, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", fmt.Sprintf("%s:%s", host, port))
	return client, nil
}

// Issue creates a new session for the user and returns the bearer token.
func (s *Store) Issue(ctx context.Context, user *models.User) (string, error) {
	now := time.Now()
	jti := uuid.NewString()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("session sign: %w", err)
	}

	payload, err := json.Marshal(&Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		CreatedAt:   now,
	})
	if err != nil {
		return "", fmt.Errorf("session marshal: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+jti, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("session store: %w", err)
	}

	return token, nil
}

// Validate checks a bearer token and returns the session identity. Returns
// ErrInvalid for bad, expired, or revoked tokens; other errors indicate an
// infrastructure fault.
func (s *Store) Validate(ctx context.Context, token string) (*Data, error) {
	cl, err := s.parse(token)
	if err != nil {
		return nil, ErrInvalid
	}

	payload, err := s.client.Get(ctx, keyPrefix+cl.ID).Bytes()
	if err == redis.Nil {
		return nil, ErrInvalid // revoked or expired server-side
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("session unmarshal: %w", err)
	}
	return &data, nil
}

// Revoke deletes the server-side session entry for a token, invalidating it
// even though its signature remains valid until expiry. Revoking an already
// invalid token is a no-op.
func (s *Store) Revoke(ctx context.Context, token string) error {
	cl, err := s.parse(token)
	if err != nil {
		return nil
	}

	if err := s.client.Del(ctx, keyPrefix+cl.ID).Err(); err != nil {
		return fmt.Errorf("session revoke: %w", err)
	}
	return nil
}

// parse verifies the token signature and expiry and returns its claims.
func (s *Store) parse(token string) (*claims, error) {
	var cl claims
	parsed, err := jwt.ParseWithClaims(token, &cl, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid || cl.ID == "" {
		return nil, ErrInvalid
	}
	return &cl, nil
}
