package txsigning

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ed25519"
)

// ed25519Verifier verifies Ed25519 signatures made directly over the
// payload. Owners are hex encoded 32 byte public keys.
type ed25519Verifier struct{}

func (ed25519Verifier) Verify(payload []byte, signature string, owner string) bool {
	publicKey, err := hex.DecodeString(owner)
	if err != nil || len(publicKey) != ed25519.PublicKeySize {
		log.Tracef("Ed25519 owner %q is not a hex encoded public key", owner)
		return false
	}
	signatureBytes, err := hex.DecodeString(signature)
	if err != nil || len(signatureBytes) != ed25519.SignatureSize {
		log.Tracef("Ed25519 signature %q is malformed", signature)
		return false
	}
	return ed25519.Verify(publicKey, payload, signatureBytes)
}

// ED25519Signer signs payloads with an Ed25519 private key.
type ED25519Signer struct {
	privateKey ed25519.PrivateKey
}

// GenerateED25519Signer creates a signer with a new random key.
func GenerateED25519Signer() (*ED25519Signer, error) {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate private key")
	}
	return &ED25519Signer{privateKey: privateKey}, nil
}

// NewED25519Signer creates a signer from a 32 byte seed.
func NewED25519Signer(seed []byte) (*ED25519Signer, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Errorf("invalid Ed25519 private key: expected %d bytes, got %d",
			ed25519.SeedSize, len(seed))
	}
	return &ED25519Signer{privateKey: ed25519.NewKeyFromSeed(seed)}, nil
}

// Scheme returns SchemeED25519.
func (s *ED25519Signer) Scheme() Scheme {
	return SchemeED25519
}

// Owner returns the hex encoded public key of the signer.
func (s *ED25519Signer) Owner() string {
	return hex.EncodeToString(s.privateKey.Public().(ed25519.PublicKey))
}

// PrivateKey returns the hex encoded seed of the signer.
func (s *ED25519Signer) PrivateKey() string {
	return hex.EncodeToString(s.privateKey.Seed())
}

// Sign returns the hex encoded Ed25519 signature of payload.
func (s *ED25519Signer) Sign(payload []byte) (string, error) {
	return hex.EncodeToString(ed25519.Sign(s.privateKey, payload)), nil
}
