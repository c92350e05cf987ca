// Package verification checks detached Ed25519 signatures on inbound bid
// requests. Verification is advisory: a failed or unverifiable signature is
// surfaced to the caller, which logs it and continues processing. That
// log-and-continue policy is deliberate and must not be hardened into a
// rejection.
package verification

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"

	"github.com/prebid/openrtb/v20/openrtb2"

	"github.com/mocktioneer/mocktioneer-server/errortypes"
	"github.com/mocktioneer/mocktioneer-server/openrtb_ext"
)

// KeyFetcher resolves signing key ids to Ed25519 public keys.
type KeyFetcher interface {
	PublicKey(kid string) (ed25519.PublicKey, bool)
}

// Verifier validates signatures against keys resolved through a KeyFetcher.
// It holds no per-request state and is safe for concurrent use.
type Verifier struct {
	keys KeyFetcher
}

func NewVerifier(keys KeyFetcher) *Verifier {
	return &Verifier{keys: keys}
}

// Verify checks a base64url (unpadded) Ed25519 signature over message using
// the key named by kid. It returns nil on success and a coded warning-severity
// error otherwise; it never panics on malformed input.
func (v *Verifier) Verify(message []byte, signatureB64, kid string) error {
	key, ok := v.keys.PublicKey(kid)
	if !ok {
		return &errortypes.UnresolvedKey{
			Message: fmt.Sprintf("key %q not found in key store", kid),
		}
	}
	if len(key) != ed25519.PublicKeySize {
		return &errortypes.UnresolvedKey{
			Message: fmt.Sprintf("key %q has invalid length %d", kid, len(key)),
		}
	}

	signature, err := base64.RawURLEncoding.DecodeString(signatureB64)
	if err != nil {
		return &errortypes.SignatureMismatch{
			Message: fmt.Sprintf("signature is not valid base64url: %v", err),
		}
	}
	if len(signature) != ed25519.SignatureSize {
		return &errortypes.SignatureMismatch{
			Message: fmt.Sprintf("signature has invalid length: expected %d, got %d", ed25519.SignatureSize, len(signature)),
		}
	}

	if !ed25519.Verify(key, message, signature) {
		return &errortypes.SignatureMismatch{
			Message: "signature does not match signed payload",
		}
	}
	return nil
}

// Status describes the outcome of request signature verification.
type Status int

const (
	// StatusNotPresent means the request carried no signature.
	StatusNotPresent Status = iota

	// StatusVerified means the signature checked out against the named key.
	StatusVerified

	// StatusFailed means a signature was present but could not be verified.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusVerified:
		return "verified"
	case StatusFailed:
		return "failed"
	default:
		return "not_present"
	}
}

// Result carries the verification outcome for one request.
type Result struct {
	Status Status
	KID    string
	Reason string
}

// VerifyRequest checks the detached signature carried in
// request.ext.trusted_server. The canonical signed payload is the request id.
// Absence of a signature is a distinct non-failure outcome.
func (v *Verifier) VerifyRequest(req *openrtb2.BidRequest) Result {
	trustedServer, err := openrtb_ext.ParseRequestTrustedServer(req.Ext)
	if err != nil {
		return Result{Status: StatusFailed, Reason: err.Error()}
	}
	if trustedServer == nil {
		return Result{Status: StatusNotPresent, Reason: "no trusted_server extension present"}
	}
	if trustedServer.Signature == "" {
		return Result{Status: StatusFailed, KID: trustedServer.KID, Reason: "missing ext.trusted_server.signature"}
	}
	if trustedServer.KID == "" {
		return Result{Status: StatusFailed, Reason: "missing ext.trusted_server.kid"}
	}

	if err := v.Verify([]byte(req.ID), trustedServer.Signature, trustedServer.KID); err != nil {
		return Result{Status: StatusFailed, KID: trustedServer.KID, Reason: err.Error()}
	}
	return Result{Status: StatusVerified, KID: trustedServer.KID}
}
