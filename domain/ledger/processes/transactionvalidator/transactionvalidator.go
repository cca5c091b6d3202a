package transactionvalidator

import (
	"github.com/kaspanet/utxoledger/domain/ledger/model"
	"github.com/kaspanet/utxoledger/domain/ledger/model/externalapi"
	"github.com/kaspanet/utxoledger/domain/ledger/validationerrors"
)

// transactionValidator checks transactions against a UTXO pool. It holds no
// mutable state and may be used concurrently if the pool allows it.
type transactionValidator struct {
	utxoPool          model.UTXOPool
	signatureVerifier model.SignatureVerifier
}

// New instantiates a new TransactionValidator
func New(utxoPool model.UTXOPool, signatureVerifier model.SignatureVerifier) model.TransactionValidator {
	return &transactionValidator{
		utxoPool:          utxoPool,
		signatureVerifier: signatureVerifier,
	}
}

// ValidateTransaction runs every validation rule on tx and collects all the
// violations, ordered by rule and then by input or output index:
//
//  1. every input's UTXO exists in the pool
//  2. the outputs sum to the value of the resolved inputs
//  3. every input's signature is valid for its owner
//  4. no UTXO is spent twice within tx
//  5. every output amount is positive
//
// A failing rule never prevents the others from running.
func (v *transactionValidator) ValidateTransaction(tx *externalapi.Transaction) *validationerrors.ValidationResult {
	resolvedUTXOs := v.resolveUTXOs(tx)

	var validationErrors []*validationerrors.ValidationError
	validationErrors = append(validationErrors, checkUTXOsExist(tx, resolvedUTXOs)...)
	validationErrors = append(validationErrors, checkBalance(tx, resolvedUTXOs)...)
	validationErrors = append(validationErrors, v.checkSignatures(tx)...)
	validationErrors = append(validationErrors, checkDoubleSpending(tx, resolvedUTXOs)...)
	validationErrors = append(validationErrors, checkOutputAmounts(tx)...)

	result := validationerrors.NewValidationResult(validationErrors)
	if result.Valid {
		log.Debugf("Transaction %s is valid", tx.ID)
	} else {
		log.Debugf("Transaction %s is invalid with %d errors: %v", tx.ID, len(result.Errors), result.Kinds())
	}
	return result
}
