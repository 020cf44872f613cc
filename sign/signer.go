package sign

import (
	"crypto"
	"crypto/rsa"
	"errors"
	"fmt"
)

var (
	ErrNilSigner      = errors.New("signer cannot be nil")
	ErrNilPublicKey   = errors.New("public key cannot be nil")
	ErrUnsupportedKey = errors.New("unsupported key type")
)

// minRSABits is the smallest modulus accepted for a signing key.
const minRSABits = 2048

// ValidateSigner checks that signer holds an RSA key of at least 2048 bits.
func ValidateSigner(signer crypto.Signer) error {
	if signer == nil {
		return ErrNilSigner
	}

	pub := signer.Public()
	if pub == nil {
		return ErrNilPublicKey
	}

	key, ok := pub.(*rsa.PublicKey)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedKey, pub)
	}
	if bits := key.N.BitLen(); bits < minRSABits {
		return fmt.Errorf("%w: RSA key of %d bits, need at least %d", ErrUnsupportedKey, bits, minRSABits)
	}
	return nil
}
