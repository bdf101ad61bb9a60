package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"courier/internal/apperrors"
)

// TokenService issues and verifies HS256 bearer tokens. Tokens are
// stateless: subject plus expiry is the entire claim set, so validity is
// fully determined by the signature and the clock.
type TokenService struct {
	signingKey []byte
	ttl        time.Duration
}

func NewTokenService(signingKey []byte, ttl time.Duration) *TokenService {
	return &TokenService{signingKey: signingKey, ttl: ttl}
}

// Issue signs a token for the given user id. The returned expiresIn is in
// seconds, matching the token response body.
func (ts *TokenService) Issue(userID int) (string, int, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.signingKey)
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}

	return signed, int(ts.ttl.Seconds()), nil
}

// Parse verifies the token and returns the subject user id. An expired but
// otherwise well-formed token yields ExpiredToken; any other failure,
// including a non-numeric subject, yields InvalidToken.
func (ts *TokenService) Parse(tokenString string) (int, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) { return ts.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, apperrors.NewExpiredToken()
		}
		return 0, apperrors.NewInvalidToken()
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, apperrors.NewInvalidToken()
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, apperrors.NewInvalidToken()
	}

	return userID, nil
}
