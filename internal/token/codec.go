package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/commentboard/backend/internal/config"
)

// Kind selects which secret and lifetime a token is bound to.
type Kind string

const (
	Access  Kind = "access"
	Refresh Kind = "refresh"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

type claims struct {
	Kind Kind `json:"kind"`
	jwt.RegisteredClaims
}

// Codec signs and verifies access and refresh tokens. The two kinds use
// distinct secrets so a compromised access secret cannot mint refresh
// tokens, and distinct lifetimes so stolen access tokens age out fast.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewCodec(cfg config.AuthConfig) *Codec {
	return &Codec{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
	}
}

func (c *Codec) IssueAccess(userID int64) (string, error) {
	return c.issue(userID, Access)
}

func (c *Codec) IssueRefresh(userID int64) (string, error) {
	return c.issue(userID, Refresh)
}

func (c *Codec) AccessTTL() time.Duration {
	return c.accessTTL
}

func (c *Codec) issue(userID int64, kind Kind) (string, error) {
	secret, ttl, err := c.kindParams(kind)
	if err != nil {
		return "", err
	}

	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return tok.SignedString(secret)
}

// Verify parses the token against the secret for the given kind and
// returns the subject user id. It fails closed: malformed, mis-signed,
// expired, or wrong-kind tokens never yield an identity.
func (c *Codec) Verify(tokenStr string, kind Kind) (int64, error) {
	secret, _, err := c.kindParams(kind)
	if err != nil {
		return 0, err
	}

	parsed := &claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, parsed, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrInvalidToken
	}
	if !tok.Valid || parsed.Kind != kind {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(parsed.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return userID, nil
}

func (c *Codec) kindParams(kind Kind) ([]byte, time.Duration, error) {
	switch kind {
	case Access:
		return c.accessSecret, c.accessTTL, nil
	case Refresh:
		return c.refreshSecret, c.refreshTTL, nil
	default:
		return nil, 0, fmt.Errorf("unknown token kind %q", kind)
	}
}
