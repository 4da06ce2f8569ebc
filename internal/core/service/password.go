package service

import (
	"crypto/rand"
	"io"
	"math/big"
	mathrand "math/rand/v2"
)

const (
	generatedPasswordLength = 16
	passwordCharset         = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789!@#$%^&*-_=+?"
)

// PasswordGenerator produces temporary credentials for new workers.
type PasswordGenerator struct {
	strong io.Reader
}

// NewPasswordGenerator draws from strong, or crypto/rand when nil.
func NewPasswordGenerator(strong io.Reader) *PasswordGenerator {
	if strong == nil {
		strong = rand.Reader
	}
	return &PasswordGenerator{strong: strong}
}

// Generate returns a 16 character password. degraded is true when the strong
// source failed and the password came from a non-cryptographic generator;
// such a password must be treated as weaker than normal.
func (g *PasswordGenerator) Generate() (password string, degraded bool) {
	if pw, err := g.fromStrong(); err == nil {
		return pw, false
	}

	buf := make([]byte, generatedPasswordLength)
	for i := range buf {
		buf[i] = passwordCharset[mathrand.IntN(len(passwordCharset))]
	}
	return string(buf), true
}

func (g *PasswordGenerator) fromStrong() (string, error) {
	max := big.NewInt(int64(len(passwordCharset)))
	buf := make([]byte, generatedPasswordLength)
	for i := range buf {
		n, err := rand.Int(g.strong, max)
		if err != nil {
			return "", err
		}
		buf[i] = passwordCharset[n.Int64()]
	}
	return string(buf), nil
}
