package services

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IdPClaims are the claims we read off tokens issued by the external
// identity provider.
type IdPClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// IdPVerifier verifies tokens against the provider's published signing keys,
// with audience and issuer pinned.
type IdPVerifier struct {
	domain   string
	audience string
	jwks     *jwksCache
}

func NewIdPVerifier(domain, audience string) (*IdPVerifier, error) {
	if domain == "" {
		return nil, errors.New("idp domain is required")
	}
	if audience == "" {
		return nil, errors.New("idp audience is required")
	}
	return &IdPVerifier{
		domain:   domain,
		audience: audience,
		jwks:     newJWKSCache(fmt.Sprintf("https://%s/.well-known/jwks.json", domain)),
	}, nil
}

func (v *IdPVerifier) Verify(ctx context.Context, tokenString string) (*IdPClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdPClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		kid, ok := token.Header["kid"].(string)
		if !ok {
			return nil, errors.New("missing kid in token header")
		}
		return v.jwks.GetKey(ctx, kid)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*IdPClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if !v.verifyAudience(claims) {
		return nil, errors.New("invalid audience")
	}

	expectedIssuer := fmt.Sprintf("https://%s/", v.domain)
	if claims.Issuer != expectedIssuer {
		return nil, fmt.Errorf("invalid issuer: expected %s, got %s", expectedIssuer, claims.Issuer)
	}

	return claims, nil
}

func (v *IdPVerifier) verifyAudience(claims *IdPClaims) bool {
	for _, aud := range claims.Audience {
		if aud == v.audience {
			return true
		}
	}
	return false
}

type jwk struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type jwksDocument struct {
	Keys []jwk `json:"keys"`
}

// jwksCache fetches and caches the provider's signing keys, refetching when
// an unknown kid shows up (key rotation).
type jwksCache struct {
	url string

	mu        sync.Mutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

func newJWKSCache(url string) *jwksCache {
	return &jwksCache{url: url, keys: make(map[string]*rsa.PublicKey)}
}

func (c *jwksCache) GetKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if key, ok := c.keys[kid]; ok {
		return key, nil
	}

	// Bound refetches so a flood of bad tokens can't hammer the provider.
	if time.Since(c.fetchedAt) < time.Minute && len(c.keys) > 0 {
		return nil, fmt.Errorf("unknown key id %q", kid)
	}

	if err := c.refresh(ctx); err != nil {
		return nil, err
	}

	key, ok := c.keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown key id %q", kid)
	}
	return key, nil
}

func (c *jwksCache) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jwks endpoint returned %d", resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode jwks: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" {
			continue
		}
		key, err := parseRSAPublicKey(k.N, k.E)
		if err != nil {
			continue
		}
		keys[k.Kid] = key
	}

	c.keys = keys
	c.fetchedAt = time.Now()
	return nil
}

// parseRSAPublicKey parses base64url-encoded n and e values into an RSA
// public key.
func parseRSAPublicKey(nStr, eStr string) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(nStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode n: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(eStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode e: %w", err)
	}

	n := new(big.Int).SetBytes(nBytes)

	var e int
	for _, b := range eBytes {
		e = e*256 + int(b)
	}

	return &rsa.PublicKey{N: n, E: e}, nil
}
