package model

import (
	"github.com/kaspanet/utxoledger/domain/ledger/model/externalapi"
	"github.com/kaspanet/utxoledger/domain/ledger/validationerrors"
)

// UTXOPool is the read access the validator needs to a set of unspent
// outputs. Each call must be an atomic read with no side effects.
type UTXOPool interface {
	GetUTXO(txID string, outputIndex uint32) (*externalapi.UTXO, bool)
}

// SignatureVerifier checks that signature was produced by the holder of
// owner over payload. It must be deterministic.
type SignatureVerifier interface {
	Verify(payload []byte, signature string, owner string) bool
}

// TransactionValidator checks a transaction against a UTXO pool and reports
// every rule it violates.
type TransactionValidator interface {
	ValidateTransaction(tx *externalapi.Transaction) *validationerrors.ValidationResult
}
