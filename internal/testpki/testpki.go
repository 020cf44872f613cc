// Package testpki provides keys for tests.
package testpki

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"log"
	"sync"
	"testing"
)

type KeyProfile string

const (
	RSA_1024   KeyProfile = "RSA_1024"
	RSA_2048   KeyProfile = "RSA_2048"
	RSA_3072   KeyProfile = "RSA_3072"
	ECDSA_P256 KeyProfile = "ECDSA_P256"
)

var (
	sharedOnce sync.Once
	sharedKey  *rsa.PrivateKey
	sharedErr  error
)

func Fail(t *testing.T, format string, args ...interface{}) {
	if t != nil {
		t.Fatalf(format, args...)
	} else {
		log.Fatalf(format, args...)
	}
}

// GenerateKey returns a fresh key of the given profile.
func GenerateKey(t *testing.T, profile KeyProfile) crypto.Signer {
	switch profile {
	case RSA_1024:
		k, err := rsa.GenerateKey(rand.Reader, 1024)
		if err != nil {
			Fail(t, "failed to generate RSA 1024 key: %v", err)
		}
		return k
	case RSA_2048:
		k, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			Fail(t, "failed to generate RSA 2048 key: %v", err)
		}
		return k
	case RSA_3072:
		k, err := rsa.GenerateKey(rand.Reader, 3072)
		if err != nil {
			Fail(t, "failed to generate RSA 3072 key: %v", err)
		}
		return k
	case ECDSA_P256:
		k, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			Fail(t, "failed to generate P-256 key: %v", err)
		}
		return k
	default:
		Fail(t, "unknown key profile: %s", profile)
		return nil
	}
}

// SharedKey returns an RSA 2048 key generated once per test binary.
func SharedKey(t *testing.T) *rsa.PrivateKey {
	sharedOnce.Do(func() {
		sharedKey, sharedErr = rsa.GenerateKey(rand.Reader, 2048)
	})
	if sharedErr != nil {
		Fail(t, "failed to generate RSA 2048 key: %v", sharedErr)
	}
	return sharedKey
}

// EncodePEM returns the PKCS#8 private key and PKIX public key of key in
// PEM form.
func EncodePEM(t *testing.T, key crypto.Signer) (private, public string) {
	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		Fail(t, "failed to encode private key: %v", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(key.Public())
	if err != nil {
		Fail(t, "failed to encode public key: %v", err)
	}
	private = string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER}))
	public = string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER}))
	return private, public
}
