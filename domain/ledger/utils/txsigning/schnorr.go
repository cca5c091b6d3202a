package txsigning

import (
	"encoding/hex"

	"github.com/kaspanet/go-secp256k1"
	"github.com/kaspanet/utxoledger/domain/ledger/utils/sighashing"
	"github.com/pkg/errors"
)

// schnorrVerifier verifies BIP-340 style Schnorr signatures over secp256k1.
// Owners are hex encoded 32 byte x-only public keys, signatures are hex
// encoded 64 byte Schnorr signatures over the blake2b-256 digest of the
// payload.
type schnorrVerifier struct{}

func (schnorrVerifier) Verify(payload []byte, signature string, owner string) bool {
	publicKeyBytes, err := hex.DecodeString(owner)
	if err != nil {
		log.Tracef("Schnorr owner %q is not hex: %s", owner, err)
		return false
	}
	publicKey, err := secp256k1.DeserializeSchnorrPubKey(publicKeyBytes)
	if err != nil {
		log.Tracef("Schnorr owner %q is not a public key: %s", owner, err)
		return false
	}

	signatureBytes, err := hex.DecodeString(signature)
	if err != nil {
		log.Tracef("Schnorr signature %q is not hex: %s", signature, err)
		return false
	}
	schnorrSignature, err := secp256k1.DeserializeSchnorrSignatureFromSlice(signatureBytes)
	if err != nil {
		log.Tracef("Schnorr signature %q is malformed: %s", signature, err)
		return false
	}

	hash := secp256k1.Hash(sighashing.SigningHash(payload))
	return publicKey.SchnorrVerify(&hash, schnorrSignature)
}

// SchnorrSigner signs payloads with a secp256k1 Schnorr key pair.
type SchnorrSigner struct {
	keyPair *secp256k1.SchnorrKeyPair
	owner   string
}

// GenerateSchnorrSigner creates a signer with a new random key.
func GenerateSchnorrSigner() (*SchnorrSigner, error) {
	keyPair, err := secp256k1.GenerateSchnorrKeyPair()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate private key")
	}
	return newSchnorrSigner(keyPair)
}

// NewSchnorrSigner creates a signer from a 32 byte private key.
func NewSchnorrSigner(privateKey []byte) (*SchnorrSigner, error) {
	keyPair, err := secp256k1.DeserializeSchnorrPrivateKeyFromSlice(privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "invalid Schnorr private key")
	}
	return newSchnorrSigner(keyPair)
}

func newSchnorrSigner(keyPair *secp256k1.SchnorrKeyPair) (*SchnorrSigner, error) {
	publicKey, err := keyPair.SchnorrPublicKey()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	serializedPublicKey, err := publicKey.Serialize()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &SchnorrSigner{
		keyPair: keyPair,
		owner:   hex.EncodeToString(serializedPublicKey[:]),
	}, nil
}

// Scheme returns SchemeSchnorr.
func (s *SchnorrSigner) Scheme() Scheme {
	return SchemeSchnorr
}

// Owner returns the hex encoded x-only public key of the signer.
func (s *SchnorrSigner) Owner() string {
	return s.owner
}

// PrivateKey returns the hex encoded private key of the signer.
func (s *SchnorrSigner) PrivateKey() string {
	return hex.EncodeToString(s.keyPair.SerializePrivateKey()[:])
}

// Sign returns the hex encoded Schnorr signature of payload.
func (s *SchnorrSigner) Sign(payload []byte) (string, error) {
	hash := secp256k1.Hash(sighashing.SigningHash(payload))
	signature, err := s.keyPair.SchnorrSign(&hash)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign")
	}
	return hex.EncodeToString(signature.Serialize()[:]), nil
}
