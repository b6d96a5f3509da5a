package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var claimOrder = []string{ClaimSubject, ClaimExpiry, ClaimAccess}

// TokenCodec signs and verifies HS256 access tokens carrying AccessClaims.
type TokenCodec struct {
	key []byte
	now func() time.Time
}

func NewTokenCodec(key []byte, now func() time.Time) *TokenCodec {
	if now == nil {
		now = time.Now
	}
	return &TokenCodec{key: key, now: now}
}

func (tc *TokenCodec) Sign(claims AccessClaims) (string, error) {
	payload := jwt.MapClaims{}
	for k, v := range claims.Encode() {
		payload[k] = v
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(tc.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (tc *TokenCodec) Verify(raw string) (AccessClaims, error) {
	token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
		return tc.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return AccessClaims{}, fmt.Errorf("%w: %w", ErrSignatureInvalid, err)
	}
	payload, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return AccessClaims{}, ErrSignatureInvalid
	}

	encoded := make(map[string]string, len(claimOrder))
	for _, name := range claimOrder {
		v, present := payload[name]
		if !present {
			continue
		}
		s, isString := v.(string)
		if !isString {
			// present but unparsable, so DecodeClaims reports it in order
			s = ""
		}
		encoded[name] = s
	}

	claims, err := DecodeClaims(encoded)
	if err != nil {
		return AccessClaims{}, err
	}
	if err := claims.checkExpiry(tc.now()); err != nil {
		return AccessClaims{}, err
	}
	return claims, nil
}

func (tc *TokenCodec) IssueForUser(u Subject) (string, AccessClaims, error) {
	claims, err := ClaimsForUser(u, tc.now())
	if err != nil {
		return "", AccessClaims{}, err
	}
	token, err := tc.Sign(claims)
	if err != nil {
		return "", AccessClaims{}, err
	}
	return token, claims, nil
}
