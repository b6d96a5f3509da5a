package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql/driver"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

const saltBytes = 16

// Credential is a salted SHA-256 password hash. It is stored as "hash:salt".
type Credential struct {
	Hash string
	Salt string
}

func NewCredential(password string) (Credential, error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return Credential{}, fmt.Errorf("generate salt: %w", err)
	}
	salt := renderSalt(raw)
	return Credential{Hash: digest(password, salt), Salt: salt}, nil
}

// renderSalt writes every byte as unpadded hex, so 0x0a becomes "a" and the
// salt is between 16 and 32 characters long.
func renderSalt(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw) * 2)
	for _, x := range raw {
		b.WriteString(strconv.FormatUint(uint64(x), 16))
	}
	return b.String()
}

func digest(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

func (c Credential) Verify(candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(digest(candidate, c.Salt)), []byte(c.Hash)) == 1
}

func (c Credential) Encode() string {
	return c.Hash + ":" + c.Salt
}

func ParseCredential(s string) (Credential, error) {
	hash, salt, ok := strings.Cut(s, ":")
	if !ok || hash == "" || salt == "" {
		return Credential{}, ErrInvalidCredentialFormat
	}
	return Credential{Hash: hash, Salt: salt}, nil
}

func (c Credential) Value() (driver.Value, error) {
	return c.Encode(), nil
}

func (c *Credential) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidCredentialFormat, src)
	}
	parsed, err := ParseCredential(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
