package verification

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
)

// JWKS-shaped key file: {"keys":[{"kid":"key-001","x":"<base64url raw key>"}]}.
type jwksFile struct {
	Keys []jwk `json:"keys"`
}

type jwk struct {
	KID string `json:"kid"`
	X   string `json:"x"`
}

// StaticKeySet is an immutable in-memory key store loaded once at startup.
// It satisfies KeyFetcher and is safe for concurrent reads.
type StaticKeySet struct {
	keys map[string]ed25519.PublicKey
}

// NewStaticKeySetFromFile loads a JWKS-shaped JSON file from disk.
func NewStaticKeySetFromFile(path string) (*StaticKeySet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading key file %s: %w", path, err)
	}
	keySet, err := NewStaticKeySet(data)
	if err != nil {
		return nil, fmt.Errorf("parsing key file %s: %w", path, err)
	}
	return keySet, nil
}

// NewStaticKeySet parses JWKS-shaped JSON into a key set. Keys must be raw
// 32-byte Ed25519 public keys, base64url encoded without padding.
func NewStaticKeySet(data []byte) (*StaticKeySet, error) {
	var parsed jwksFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}

	keys := make(map[string]ed25519.PublicKey, len(parsed.Keys))
	for _, key := range parsed.Keys {
		if key.KID == "" {
			return nil, fmt.Errorf("key set contains a key with no kid")
		}
		raw, err := base64.RawURLEncoding.DecodeString(key.X)
		if err != nil {
			return nil, fmt.Errorf("key %q is not valid base64url: %v", key.KID, err)
		}
		if len(raw) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("key %q has invalid length: expected %d, got %d", key.KID, ed25519.PublicKeySize, len(raw))
		}
		keys[key.KID] = ed25519.PublicKey(raw)
	}

	return &StaticKeySet{keys: keys}, nil
}

func (s *StaticKeySet) PublicKey(kid string) (ed25519.PublicKey, bool) {
	key, ok := s.keys[kid]
	return key, ok
}
