package txsigning

import (
	"encoding/hex"
	"strings"

	"github.com/kaspanet/utxoledger/domain/ledger/model"
	"github.com/kaspanet/utxoledger/domain/ledger/model/externalapi"
	"github.com/kaspanet/utxoledger/domain/ledger/utils/sighashing"
	"github.com/pkg/errors"
)

// Scheme names a signature scheme.
type Scheme string

// Supported schemes.
const (
	SchemeSchnorr Scheme = "schnorr"
	SchemeED25519 Scheme = "ed25519"
)

// ParseScheme returns the scheme with the given name.
func ParseScheme(name string) (Scheme, error) {
	switch Scheme(strings.ToLower(name)) {
	case SchemeSchnorr:
		return SchemeSchnorr, nil
	case SchemeED25519:
		return SchemeED25519, nil
	}
	return "", errors.Errorf("unknown signature scheme '%s'", name)
}

// Signer produces signatures that the verifier of its scheme accepts for
// Owner.
type Signer interface {
	Scheme() Scheme
	Owner() string
	PrivateKey() string
	Sign(payload []byte) (string, error)
}

// NewVerifier returns the signature verifier of the given scheme.
func NewVerifier(scheme Scheme) (model.SignatureVerifier, error) {
	switch scheme {
	case SchemeSchnorr:
		return schnorrVerifier{}, nil
	case SchemeED25519:
		return ed25519Verifier{}, nil
	}
	return nil, errors.Errorf("unknown signature scheme '%s'", scheme)
}

// NewSigner returns a signer of the given scheme for a hex encoded private
// key.
func NewSigner(scheme Scheme, privateKeyHex string) (Signer, error) {
	privateKey, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, errors.Wrap(err, "private key is not hex encoded")
	}
	switch scheme {
	case SchemeSchnorr:
		return NewSchnorrSigner(privateKey)
	case SchemeED25519:
		return NewED25519Signer(privateKey)
	}
	return nil, errors.Errorf("unknown signature scheme '%s'", scheme)
}

// GenerateSigner returns a signer of the given scheme with a new random key.
func GenerateSigner(scheme Scheme) (Signer, error) {
	switch scheme {
	case SchemeSchnorr:
		return GenerateSchnorrSigner()
	case SchemeED25519:
		return GenerateED25519Signer()
	}
	return nil, errors.Errorf("unknown signature scheme '%s'", scheme)
}

// SignTransaction sets the signature of every input of tx owned by signer
// and returns how many inputs it signed. Inputs of other owners are left
// untouched.
func SignTransaction(tx *externalapi.Transaction, signer Signer) (int, error) {
	payload, err := sighashing.SigningPayload(tx)
	if err != nil {
		return 0, err
	}
	signature, err := signer.Sign(payload)
	if err != nil {
		return 0, err
	}

	signed := 0
	for _, input := range tx.Inputs {
		if input.Owner != signer.Owner() {
			continue
		}
		input.Signature = signature
		signed++
	}
	log.Debugf("Signed %d inputs of transaction %s with %s", signed, tx.ID, signer.Scheme())
	return signed, nil
}
