// Package auth verifies the storefront session tokens that identify the
// calling shop on every API request.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a session token cannot be parsed, is
// expired, or does not name a shop.
var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims is the payload of a storefront session token. Dest is the
// shop's admin URL, e.g. https://acme.myshopify.com.
type SessionClaims struct {
	jwt.RegisteredClaims
	Dest string `json:"dest"`
}

// Verifier validates HS256 session tokens signed with the app secret.
type Verifier struct {
	secret   []byte
	audience string
	leeway   time.Duration
	nowFunc  func() time.Time
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithAudience requires the token's aud claim to contain the app's API key.
func WithAudience(aud string) VerifierOption {
	return func(v *Verifier) {
		v.audience = aud
	}
}

// WithLeeway tolerates clock skew when checking exp and nbf.
func WithLeeway(d time.Duration) VerifierOption {
	return func(v *Verifier) {
		v.leeway = d
	}
}

// WithClock overrides the clock for testing.
func WithClock(f func() time.Time) VerifierOption {
	return func(v *Verifier) {
		v.nowFunc = f
	}
}

// NewVerifier creates a Verifier for tokens signed with secret.
func NewVerifier(secret string, opts ...VerifierOption) *Verifier {
	v := &Verifier{
		secret:  []byte(secret),
		leeway:  5 * time.Second,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify parses tokenString and returns the shop domain it was issued for.
func (v *Verifier) Verify(tokenString string) (string, error) {
	if len(v.secret) == 0 {
		return "", fmt.Errorf("%w: no app secret configured", ErrInvalidToken)
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(v.nowFunc),
	}
	if v.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(v.audience))
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, parserOpts...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}

	shop := ShopFromDest(claims.Dest)
	if shop == "" {
		return "", fmt.Errorf("%w: missing dest claim", ErrInvalidToken)
	}
	return shop, nil
}

// ShopFromDest strips the scheme and any path from a dest claim.
func ShopFromDest(dest string) string {
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return ""
	}
	if u, err := url.Parse(dest); err == nil && u.Host != "" {
		return strings.ToLower(u.Host)
	}
	dest = strings.TrimPrefix(dest, "https://")
	if i := strings.IndexByte(dest, '/'); i >= 0 {
		dest = dest[:i]
	}
	return strings.ToLower(dest)
}

// IssueSessionToken signs a session token for shop. The server never
// issues these in production; the cimp CLI and the mock server use it to
// talk to a locally running API.
func IssueSessionToken(secret, shop, audience string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "https://" + shop + "/admin",
			Subject:   "cimp",
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Dest: "https://" + shop,
	}
	if audience != "" {
		claims.Audience = jwt.ClaimStrings{audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

type shopKey struct{}

// WithShop returns a copy of ctx carrying the authenticated shop domain.
func WithShop(ctx context.Context, shop string) context.Context {
	return context.WithValue(ctx, shopKey{}, shop)
}

// ShopFrom returns the authenticated shop domain, if any.
func ShopFrom(ctx context.Context) (string, bool) {
	shop, ok := ctx.Value(shopKey{}).(string)
	return shop, ok && shop != ""
}
