package transactionvalidator

import (
	"math/big"

	"github.com/kaspanet/utxoledger/domain/ledger/model/externalapi"
	"github.com/kaspanet/utxoledger/domain/ledger/validationerrors"
)

// resolveUTXOs looks up the UTXO of every input, once per input. Missing
// UTXOs, and the UTXOs of nil inputs, are nil.
func (v *transactionValidator) resolveUTXOs(tx *externalapi.Transaction) []*externalapi.UTXO {
	resolvedUTXOs := make([]*externalapi.UTXO, len(tx.Inputs))
	for i, input := range tx.Inputs {
		if input == nil {
			continue
		}
		utxo, ok := v.utxoPool.GetUTXO(input.UTXOID.TxID, input.UTXOID.OutputIndex)
		if ok && utxo != nil {
			resolvedUTXOs[i] = utxo
		}
	}
	return resolvedUTXOs
}

func checkUTXOsExist(tx *externalapi.Transaction, resolvedUTXOs []*externalapi.UTXO) []*validationerrors.ValidationError {
	var validationErrors []*validationerrors.ValidationError
	for i, input := range tx.Inputs {
		if resolvedUTXOs[i] != nil {
			continue
		}
		if input == nil {
			validationErrors = append(validationErrors, validationerrors.New(validationerrors.KindUTXONotFound,
				"input %d is nil and references no UTXO", i))
			continue
		}
		log.Tracef("Transaction %s: input %d references missing UTXO %s", tx.ID, i, input.UTXOID)
		validationErrors = append(validationErrors, validationerrors.New(validationerrors.KindUTXONotFound,
			"input %d references UTXO %s which is not in the pool", i, input.UTXOID))
	}
	return validationErrors
}

// checkBalance compares the outputs with the resolved inputs only, since the
// amount of a missing UTXO is unknown. Sums are exact so that overflow cannot
// make a mismatch look balanced.
func checkBalance(tx *externalapi.Transaction, resolvedUTXOs []*externalapi.UTXO) []*validationerrors.ValidationError {
	totalIn := new(big.Int)
	for _, utxo := range resolvedUTXOs {
		if utxo == nil {
			continue
		}
		totalIn.Add(totalIn, new(big.Int).SetUint64(utxo.Amount))
	}

	totalOut := new(big.Int)
	for _, output := range tx.Outputs {
		if output == nil {
			continue
		}
		totalOut.Add(totalOut, big.NewInt(output.Amount))
	}

	if totalIn.Cmp(totalOut) == 0 {
		return nil
	}
	log.Tracef("Transaction %s: inputs sum to %s, outputs sum to %s", tx.ID, totalIn, totalOut)
	return []*validationerrors.ValidationError{
		validationerrors.New(validationerrors.KindAmountMismatch,
			"total input amount %s does not match total output amount %s", totalIn, totalOut),
	}
}

// checkDoubleSpending reports every input that spends a UTXO already spent by
// an earlier input. UTXOs are identified by their own ID, and inputs with a
// missing UTXO are skipped.
func checkDoubleSpending(tx *externalapi.Transaction, resolvedUTXOs []*externalapi.UTXO) []*validationerrors.ValidationError {
	var validationErrors []*validationerrors.ValidationError
	firstSpender := make(map[string]int, len(resolvedUTXOs))
	for i, utxo := range resolvedUTXOs {
		if utxo == nil {
			continue
		}
		if spender, ok := firstSpender[utxo.ID]; ok {
			log.Tracef("Transaction %s: input %d double spends UTXO %s", tx.ID, i, utxo.ID)
			validationErrors = append(validationErrors, validationerrors.New(validationerrors.KindDoubleSpending,
				"input %d spends UTXO %s which is already spent by input %d", i, utxo.ID, spender))
			continue
		}
		firstSpender[utxo.ID] = i
	}
	return validationErrors
}
