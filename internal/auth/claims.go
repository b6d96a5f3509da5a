package auth

import (
	"strconv"
	"time"
)

const (
	ClaimSubject = "sub"
	ClaimExpiry  = "exp"
	ClaimAccess  = "acs"

	TokenLifetime = time.Hour
)

type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "User"
	case RoleAdmin:
		return "Admin"
	}
	return "Role(" + strconv.Itoa(int(r)) + ")"
}

func ParseRole(s string) (Role, error) {
	switch s {
	case "User":
		return RoleUser, nil
	case "Admin":
		return RoleAdmin, nil
	}
	return 0, ErrInvalidRole
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Subject is anything a token can be issued for. A zero id means the
// subject has not been persisted yet.
type Subject interface {
	SubjectID() int64
	SubjectRole() Role
}

type AccessClaims struct {
	Sub int64
	Exp uint64
	Acs Role
}

func ClaimsForUser(u Subject, now time.Time) (AccessClaims, error) {
	id := u.SubjectID()
	if id == 0 {
		return AccessClaims{}, ErrUserWithoutID
	}
	return AccessClaims{
		Sub: id,
		Exp: uint64(now.Add(TokenLifetime).Unix()),
		Acs: u.SubjectRole(),
	}, nil
}

func (c AccessClaims) Encode() map[string]string {
	return map[string]string{
		ClaimSubject: strconv.FormatInt(c.Sub, 10),
		ClaimExpiry:  strconv.FormatUint(c.Exp, 10),
		ClaimAccess:  c.Acs.String(),
	}
}

// DecodeClaims reads sub, exp and acs in that order and stops at the first
// missing or malformed claim. Expiry is not checked here.
func DecodeClaims(m map[string]string) (AccessClaims, error) {
	sub, err := claimValue(m, ClaimSubject, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
	if err != nil {
		return AccessClaims{}, err
	}
	exp, err := claimValue(m, ClaimExpiry, func(s string) (uint64, error) {
		return strconv.ParseUint(s, 10, 64)
	})
	if err != nil {
		return AccessClaims{}, err
	}
	acs, err := claimValue(m, ClaimAccess, ParseRole)
	if err != nil {
		return AccessClaims{}, err
	}
	return AccessClaims{Sub: sub, Exp: exp, Acs: acs}, nil
}

func claimValue[T any](m map[string]string, name string, parse func(string) (T, error)) (T, error) {
	var zero T
	raw, ok := m[name]
	if !ok {
		return zero, &MissingClaimError{Claim: name}
	}
	v, err := parse(raw)
	if err != nil {
		return zero, &InvalidFormatError{Claim: name}
	}
	return v, nil
}

func (c AccessClaims) checkExpiry(now time.Time) error {
	n := now.Unix()
	if n < 0 {
		return nil
	}
	if c.Exp < uint64(n) {
		return &TokenExpiredError{Seconds: uint64(n) - c.Exp}
	}
	return nil
}
