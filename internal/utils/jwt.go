package utils

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// Verification failures callers are expected to branch on. Anything else
// returned by ValidateToken is an internal fault and must not be treated
// as a bad token.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims represents the JWT claims
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.StandardClaims
}

// GenerateToken creates a signed HS256 token for the given user. The claim
// set is the full session record: subject id, issued-at and expiry. There is
// no server-side session row to go with it.
func GenerateToken(userID uuid.UUID, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			Subject:   userID.String(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(expiry).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken checks the signature and expiry of a token and returns its
// claims. Expired-but-well-signed tokens yield ErrTokenExpired; malformed or
// tampered tokens yield ErrTokenInvalid.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})

	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			// Signature and shape problems win over expiry: a forged
			// token never gets the softer "expired" answer.
			badToken := jwt.ValidationErrorMalformed |
				jwt.ValidationErrorUnverifiable |
				jwt.ValidationErrorSignatureInvalid
			if ve.Errors&badToken != 0 {
				return nil, ErrTokenInvalid
			}
			if ve.Errors&jwt.ValidationErrorExpired != 0 {
				return nil, ErrTokenExpired
			}
			return nil, ErrTokenInvalid
		}
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
