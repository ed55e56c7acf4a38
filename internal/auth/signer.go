package auth

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Signer mints tokens the way the identity provider does. It exists for the
// mint-token tool and for tests; the API itself never signs tokens.
type Signer struct {
	method     jwt.SigningMethod
	key        interface{}
	issuer     string
	expiration time.Duration
}

// NewHS256Signer creates a signer using a shared secret.
func NewHS256Signer(secret, issuer string, expiration time.Duration) *Signer {
	return &Signer{
		method:     jwt.SigningMethodHS256,
		key:        []byte(secret),
		issuer:     issuer,
		expiration: expiration,
	}
}

// NewRS256Signer creates a signer from a PEM-encoded RSA private key file.
func NewRS256Signer(privateKeyPath, issuer string, expiration time.Duration) (*Signer, error) {
	key, err := loadPrivateKey(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load private key: %w", err)
	}
	return &Signer{
		method:     jwt.SigningMethodRS256,
		key:        key,
		issuer:     issuer,
		expiration: expiration,
	}, nil
}

// SignerFromKey creates an RS256 signer from an in-memory key. Intended for
// tests.
func SignerFromKey(key *rsa.PrivateKey, issuer string, expiration time.Duration) *Signer {
	return &Signer{
		method:     jwt.SigningMethodRS256,
		key:        key,
		issuer:     issuer,
		expiration: expiration,
	}
}

// Sign mints a token for the given uid.
func (s *Signer) Sign(uid, name, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Name:  name,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			ID:        uuid.New().String(),
		},
	}

	return jwt.NewWithClaims(s.method, claims).SignedString(s.key)
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("failed to decode PEM block")
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("not an RSA private key")
	}
	return key, nil
}
