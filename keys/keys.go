// Package keys manages the signing key pair kept on disk as a JSON file
// holding a PKCS#8 private key and a PKIX public key, both PEM encoded.
package keys

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Bits is the size of generated RSA keys.
const Bits = 2048

var (
	// ErrNoKeyPair is returned when the store holds no key pair yet.
	ErrNoKeyPair = errors.New("no key pair found")

	// ErrInvalidKey is returned for PEM data that does not hold an RSA key
	// of the expected kind.
	ErrInvalidKey = errors.New("invalid key")

	// ErrKeyMismatch is returned by Import when the public key does not
	// belong to the private key.
	ErrKeyMismatch = errors.New("public key does not match private key")
)

// KeyPair is the stored form of a key pair.
type KeyPair struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

// Signer parses the private key.
func (kp *KeyPair) Signer() (crypto.Signer, error) {
	return ParsePrivateKey(kp.PrivateKey)
}

// Store keeps a key pair in a file.
type Store struct {
	Path string
}

// Open returns a store at path, or at DefaultPath when path is empty.
func Open(path string) (*Store, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	return &Store{Path: path}, nil
}

// Exists reports whether the store holds a key pair.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// Generate creates a new RSA key pair and saves it, replacing any stored one.
func (s *Store) Generate() (*KeyPair, error) {
	key, err := rsa.GenerateKey(rand.Reader, Bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to encode private key: %w", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encode public key: %w", err)
	}

	kp := &KeyPair{
		PublicKey:  string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})),
		PrivateKey: string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})),
	}
	if err := s.save(kp); err != nil {
		return nil, err
	}
	return kp, nil
}

// Import validates a PEM encoded key pair and saves it.
func (s *Store) Import(privatePEM, publicPEM string) (*KeyPair, error) {
	priv, err := ParsePrivateKey(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	pub, err := ParsePublicKey(publicPEM)
	if err != nil {
		return nil, fmt.Errorf("invalid public key: %w", err)
	}
	if !priv.PublicKey.Equal(pub) {
		return nil, ErrKeyMismatch
	}

	kp := &KeyPair{PublicKey: publicPEM, PrivateKey: privatePEM}
	if err := s.save(kp); err != nil {
		return nil, err
	}
	return kp, nil
}

// Load reads the stored key pair.
func (s *Store) Load() (*KeyPair, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w at %s", ErrNoKeyPair, s.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key pair: %w", err)
	}

	var kp KeyPair
	if err := json.Unmarshal(data, &kp); err != nil {
		return nil, fmt.Errorf("failed to decode key pair %s: %w", s.Path, err)
	}
	return &kp, nil
}

// Export returns the stored private key in PEM form.
func (s *Store) Export() (string, error) {
	kp, err := s.Load()
	if err != nil {
		return "", err
	}
	return kp.PrivateKey, nil
}

// PublicKey returns the stored public key in PEM form.
func (s *Store) PublicKey() (string, error) {
	kp, err := s.Load()
	if err != nil {
		return "", err
	}
	return kp.PublicKey, nil
}

func (s *Store) save(kp *KeyPair) error {
	data, err := json.MarshalIndent(kp, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write key pair: %w", err)
	}
	return nil
}

// ParsePrivateKey parses a PEM encoded PKCS#8 RSA private key.
func ParsePrivateKey(data string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(data))
	if block == nil {
		return nil, fmt.Errorf("%w: failed to parse PEM block containing the private key", ErrInvalidKey)
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not an RSA key", ErrInvalidKey, key)
	}
	return rsaKey, nil
}

// ParsePublicKey parses a PEM encoded PKIX RSA public key.
func ParsePublicKey(data string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(data))
	if block == nil {
		return nil, fmt.Errorf("%w: failed to parse PEM block containing the public key", ErrInvalidKey)
	}
	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not an RSA key", ErrInvalidKey, key)
	}
	return rsaKey, nil
}
