package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAudience is the audience the hosted auth provider puts on user
// access tokens.
const DefaultAudience = "authenticated"

var (
	// ErrNoCredential means no access token is available.
	ErrNoCredential = errors.New("no access token")

	// ErrInvalidToken means the token failed verification.
	ErrInvalidToken = errors.New("invalid access token")
)

// StaticToken is a fixed access token, typically from config or a flag.
type StaticToken string

// AccessToken returns the token, or ErrNoCredential when it is blank.
func (t StaticToken) AccessToken(ctx context.Context) (string, error) {
	tok := strings.TrimSpace(string(t))
	if tok == "" {
		return "", ErrNoCredential
	}
	return tok, nil
}

// Claims is the subset of the provider's access-token claims we use.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 access tokens signed with the project's JWT secret.
type Verifier struct {
	secret   []byte
	audience string
	parser   *jwt.Parser
}

func NewVerifier(secret, audience string) *Verifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return &Verifier{
		secret:   []byte(secret),
		audience: audience,
		parser:   jwt.NewParser(opts...),
	}
}

// Verify parses the token and returns the caller it identifies.
func (v *Verifier) Verify(token string) (AuthContext, error) {
	var claims Claims
	_, err := v.parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return AuthContext{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return AuthContext{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return AuthContext{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// Issuer mints access tokens verifiable by a Verifier with the same secret.
// It is used for local development and tests.
type Issuer struct {
	secret   []byte
	audience string
}

func NewIssuer(secret, audience string) *Issuer {
	return &Issuer{secret: []byte(secret), audience: audience}
}

// Issue returns a signed token for subject that expires after ttl.
func (i *Issuer) Issue(subject, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  DefaultAudience,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if i.audience != "" {
		claims.Audience = jwt.ClaimStrings{i.audience}
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
