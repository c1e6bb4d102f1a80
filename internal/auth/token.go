package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// ErrInvalidToken is returned by Verify for any token that does not carry
// a valid admin session.
var ErrInvalidToken = errors.New("invalid session token")

// Claims are the session token's claims.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (g *Gate) issue(email string) (*Session, error) {
	now := g.now()
	exp := now.Add(g.ttl)
	claims := &Claims{
		Role:  RoleAdmin,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    g.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}
	return &Session{Token: token, ExpiresAt: exp, Claims: claims}, nil
}

// Verify checks the token's signature, expiry, issuer and role.
func (g *Gate) Verify(token string) (*Claims, error) {
	if g == nil || token == "" {
		return nil, ErrInvalidToken
	}

	var claims Claims
	// Time-based claims are checked below against the gate's clock.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	_, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return g.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	now := g.now()
	if !claims.VerifyExpiresAt(now, true) {
		return nil, fmt.Errorf("%w: expired", ErrInvalidToken)
	}
	if !claims.VerifyIssuer(g.issuer, g.issuer != "") {
		return nil, fmt.Errorf("%w: issuer %q", ErrInvalidToken, claims.Issuer)
	}
	if claims.Role != RoleAdmin {
		return nil, fmt.Errorf("%w: role %q", ErrInvalidToken, claims.Role)
	}
	return &claims, nil
}
