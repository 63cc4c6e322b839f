package security

import (
	"crypto"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is malformed or invalid.
	ErrInvalidToken = errors.New("invalid token")
	// ErrSigningKeyRequired is returned by IssueAccess on a validate-only provider.
	ErrSigningKeyRequired = errors.New("signing key required")
)

// AccessClaims holds JWT claims for the access token. Subject is the user id.
type AccessClaims struct {
	jwt.RegisteredClaims
	OrgID     string `json:"org_id"`
	SessionID string `json:"session_id"`
}

// TokenProvider validates access JWTs (RS256 or ES256) issued by the identity backend. With a
// private key it can also issue them, which only the seed tool does.
type TokenProvider struct {
	privateKey crypto.Signer
	publicKey  crypto.PublicKey
	issuer     string
	audience   string
	accessTTL  time.Duration
	now        func() time.Time
}

// NewTokenProvider returns a TokenProvider. privateKey may be nil for a validate-only provider.
func NewTokenProvider(privateKey crypto.Signer, publicKey crypto.PublicKey, issuer, audience string, accessTTL time.Duration) *TokenProvider {
	return &TokenProvider{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     issuer,
		audience:   audience,
		accessTTL:  accessTTL,
		now:        time.Now,
	}
}

// NewTokenProviderFromPEM parses the configured keys (inline PEM or file paths). privatePEM may be
// empty.
func NewTokenProviderFromPEM(privatePEM, publicPEM, issuer, audience string, accessTTL time.Duration) (*TokenProvider, error) {
	pub, err := ParsePublicKey(publicPEM)
	if err != nil {
		return nil, fmt.Errorf("security: public key: %w", err)
	}
	var signer crypto.Signer
	if privatePEM != "" {
		signer, err = ParsePrivateKey(privatePEM)
		if err != nil {
			return nil, fmt.Errorf("security: private key: %w", err)
		}
		if KeyAlg(signer.Public()) != KeyAlg(pub) {
			return nil, fmt.Errorf("security: %w: private and public key types differ", ErrInvalidKey)
		}
	}
	return NewTokenProvider(signer, pub, issuer, audience, accessTTL), nil
}

// IssueAccess issues a short-lived access JWT for the given session, user, and org.
// Returns the token string and its expiration time.
func (p *TokenProvider) IssueAccess(sessionID, userID, orgID string) (token string, expiresAt time.Time, err error) {
	if p.privateKey == nil {
		return "", time.Time{}, ErrSigningKeyRequired
	}
	jti, err := generateJTI()
	if err != nil {
		return "", time.Time{}, err
	}
	now := p.now().UTC()
	expiresAt = now.Add(p.accessTTL)
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   userID,
			Issuer:    p.issuer,
			Audience:  jwt.ClaimStrings{p.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		OrgID:     orgID,
		SessionID: sessionID,
	}
	var method jwt.SigningMethod
	switch KeyAlg(p.privateKey.Public()) {
	case "RS256":
		method = jwt.SigningMethodRS256
	case "ES256":
		method = jwt.SigningMethodES256
	default:
		return "", time.Time{}, ErrInvalidKey
	}
	token, err = jwt.NewWithClaims(method, claims).SignedString(p.privateKey)
	return token, expiresAt, err
}

// ValidateAccess parses and validates the access token (signature, exp, iss, aud).
// Returns sessionID, userID, orgID, or ErrInvalidToken.
func (p *TokenProvider) ValidateAccess(tokenString string) (sessionID, userID, orgID string, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodRSA, *jwt.SigningMethodECDSA:
			return p.publicKey, nil
		}
		return nil, ErrInvalidToken
	}, jwt.WithIssuer(p.issuer), jwt.WithAudience(p.audience), jwt.WithTimeFunc(p.now), jwt.WithExpirationRequired())
	if err != nil {
		return "", "", "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid || claims.Subject == "" || claims.OrgID == "" {
		return "", "", "", ErrInvalidToken
	}
	if !slices.Contains(claims.Audience, p.audience) {
		return "", "", "", ErrInvalidToken
	}
	return claims.SessionID, claims.Subject, claims.OrgID, nil
}

func generateJTI() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
