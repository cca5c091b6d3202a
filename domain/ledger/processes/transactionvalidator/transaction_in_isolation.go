package transactionvalidator

import (
	"github.com/kaspanet/utxoledger/domain/ledger/model/externalapi"
	"github.com/kaspanet/utxoledger/domain/ledger/utils/sighashing"
	"github.com/kaspanet/utxoledger/domain/ledger/validationerrors"
)

// checkSignatures verifies every input's signature over the signing payload,
// whether or not its UTXO was found. Without a payload, which is the case for
// a transaction with a nil input or output, no input can be verified.
func (v *transactionValidator) checkSignatures(tx *externalapi.Transaction) []*validationerrors.ValidationError {
	var validationErrors []*validationerrors.ValidationError

	payload, err := sighashing.SigningPayload(tx)
	if err != nil {
		log.Warnf("Could not build the signing payload of transaction %s: %s", tx.ID, err)
		for i := range tx.Inputs {
			validationErrors = append(validationErrors, validationerrors.New(validationerrors.KindInvalidSignature,
				"input %d cannot be verified: %s", i, err))
		}
		return validationErrors
	}

	for i, input := range tx.Inputs {
		if v.signatureVerifier.Verify(payload, input.Signature, input.Owner) {
			continue
		}
		log.Tracef("Transaction %s: input %d has an invalid signature for owner %s", tx.ID, i, input.Owner)
		validationErrors = append(validationErrors, validationerrors.New(validationerrors.KindInvalidSignature,
			"input %d has an invalid signature for owner %s", i, input.Owner))
	}
	return validationErrors
}

// checkOutputAmounts reports every output with a zero or negative amount,
// and every nil output. All of them share the same error kind.
func checkOutputAmounts(tx *externalapi.Transaction) []*validationerrors.ValidationError {
	var validationErrors []*validationerrors.ValidationError
	for i, output := range tx.Outputs {
		if output == nil {
			validationErrors = append(validationErrors, validationerrors.New(validationerrors.KindNegativeAmount,
				"output %d is nil and has no amount", i))
			continue
		}
		if output.Amount > 0 {
			continue
		}
		validationErrors = append(validationErrors, validationerrors.New(validationerrors.KindNegativeAmount,
			"output %d has non-positive amount %d", i, output.Amount))
	}
	return validationErrors
}
