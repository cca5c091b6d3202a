package main

import (
	"io"

	"github.com/kaspanet/utxoledger/domain/ledger/model/externalapi"
	"github.com/kaspanet/utxoledger/domain/ledger/processes/transactionvalidator"
	"github.com/kaspanet/utxoledger/domain/ledger/utxopool"
	"github.com/kaspanet/utxoledger/domain/ledger/validationerrors"
	"github.com/kaspanet/utxoledger/infrastructure/logger"
	"github.com/pkg/errors"
)

// errInvalidTransactions makes txtool exit with status 1 after the results
// were printed.
var errInvalidTransactions = errors.New("one or more transactions are invalid")

type transactionValidationResult struct {
	ID string `json:"id"`
	*validationerrors.ValidationResult
}

type validateOutput struct {
	Results    []*transactionValidationResult `json:"results"`
	UTXOs      []*externalapi.UTXO            `json:"utxos,omitempty"`
	Commitment string                         `json:"commitment,omitempty"`
}

func validate(conf *validateConfig, out io.Writer) error {
	onEnd := logger.LogAndMeasureExecutionTime(log, "validate")
	defer onEnd()

	transactions, err := readTransactionsFile(conf.TransactionFile)
	if err != nil {
		return err
	}
	utxos, err := readUTXOsFile(conf.UTXOFile)
	if err != nil {
		return err
	}

	pool, err := utxopool.NewFromUTXOs(utxos)
	if err != nil {
		return err
	}
	verifier, err := conf.Verifier()
	if err != nil {
		return err
	}
	validator := transactionvalidator.New(pool, verifier)

	output := &validateOutput{Results: make([]*transactionValidationResult, len(transactions))}
	allValid := true
	for i, tx := range transactions {
		var result *validationerrors.ValidationResult
		if conf.Apply {
			result, err = pool.ApplyTransaction(tx, validator)
			if err != nil && result.Valid {
				return err
			}
		} else {
			result = validator.ValidateTransaction(tx)
		}
		if !result.Valid {
			allValid = false
			log.Infof("Transaction %s is invalid: %v", tx.ID, result.Kinds())
		}
		output.Results[i] = &transactionValidationResult{ID: tx.ID, ValidationResult: result}
	}

	if conf.Apply {
		output.UTXOs = pool.UTXOs()
		output.Commitment, err = pool.Commitment()
		if err != nil {
			return err
		}
	}

	err = printJSON(out, output)
	if err != nil {
		return err
	}
	if !allValid {
		return errInvalidTransactions
	}
	return nil
}
