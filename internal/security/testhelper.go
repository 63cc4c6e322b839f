package security

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"sync"
	"time"
)

var (
	testKeysOnce sync.Once
	testPrivPEM  string
	testPubPEM   string
	testKeysErr  error
)

// testKeyPair generates one RSA key pair per process for tests and returns it PEM-encoded.
func testKeyPair() (privPEM, pubPEM string, err error) {
	testKeysOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			testKeysErr = err
			return
		}
		privDER, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			testKeysErr = err
			return
		}
		pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
		if err != nil {
			testKeysErr = err
			return
		}
		testPrivPEM = string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER}))
		testPubPEM = string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER}))
	})
	return testPrivPEM, testPubPEM, testKeysErr
}

func testPrivateKeyPEM() string {
	priv, _, _ := testKeyPair()
	return priv
}

func testPublicKeyPEM() string {
	_, pub, _ := testKeyPair()
	return pub
}

// NewTestTokenProvider returns a signing TokenProvider over a generated RSA key pair, issuer
// "test-issuer" and audience "test-audience". For unit tests only.
func NewTestTokenProvider() (*TokenProvider, error) {
	privPEM, pubPEM, err := testKeyPair()
	if err != nil {
		return nil, err
	}
	return NewTokenProviderFromPEM(privPEM, pubPEM, "test-issuer", "test-audience", 15*time.Minute)
}
