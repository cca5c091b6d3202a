package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/kaspanet/utxoledger/domain/ledger/model/externalapi"
	"github.com/kaspanet/utxoledger/infrastructure/logger"
	"github.com/pkg/errors"
)

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	closeLog()
	os.Exit(1)
}

// closeLog flushes pending log entries.
func closeLog() {
	if logger.BackendLog.IsRunning() {
		logger.BackendLog.Close()
	}
}

// readTransactionsFile reads a JSON file holding either a single transaction
// or an array of transactions.
func readTransactionsFile(path string) ([]*externalapi.Transaction, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '[' {
		var transactions []*externalapi.Transaction
		err = json.Unmarshal(data, &transactions)
		if err != nil {
			return nil, errors.Wrapf(err, "could not parse transactions of %s", path)
		}
		for i, tx := range transactions {
			if tx == nil {
				return nil, errors.Errorf("transaction %d of %s is null", i, path)
			}
			err = checkNoNullElements(tx)
			if err != nil {
				return nil, errors.Wrapf(err, "transaction %d of %s", i, path)
			}
		}
		return transactions, nil
	}

	tx := &externalapi.Transaction{}
	err = json.Unmarshal(data, tx)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse transaction of %s", path)
	}
	err = checkNoNullElements(tx)
	if err != nil {
		return nil, errors.Wrapf(err, "transaction of %s", path)
	}
	return []*externalapi.Transaction{tx}, nil
}

func checkNoNullElements(tx *externalapi.Transaction) error {
	for i, input := range tx.Inputs {
		if input == nil {
			return errors.Errorf("input %d is null", i)
		}
	}
	for i, output := range tx.Outputs {
		if output == nil {
			return errors.Errorf("output %d is null", i)
		}
	}
	return nil
}

// readUTXOsFile reads a JSON file holding an array of UTXOs.
func readUTXOsFile(path string) ([]*externalapi.UTXO, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	var utxos []*externalapi.UTXO
	err = decoder.Decode(&utxos)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse UTXOs of %s", path)
	}
	for i, utxo := range utxos {
		if utxo == nil {
			return nil, errors.Errorf("UTXO %d of %s is null", i, path)
		}
	}
	return utxos, nil
}

func printJSON(out io.Writer, value interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return errors.WithStack(encoder.Encode(value))
}
