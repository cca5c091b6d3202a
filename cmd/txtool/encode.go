package main

import (
	"fmt"
	"io"

	"github.com/kaspanet/utxoledger/domain/ledger/utils/txserialization"
	"github.com/pkg/errors"
)

func encode(conf *encodeConfig, out io.Writer) error {
	transactions, err := readTransactionsFile(conf.TransactionFile)
	if err != nil {
		return err
	}

	encodedTransactions := make([][]byte, len(transactions))
	for i, tx := range transactions {
		encodedTransactions[i], err = txserialization.EncodeTransaction(tx)
		if err != nil {
			return errors.Wrapf(err, "could not encode transaction %s", tx.ID)
		}
		log.Debugf("Encoded transaction %s into %d bytes", tx.ID, len(encodedTransactions[i]))
	}

	_, err = fmt.Fprintln(out, encodeTransactionsToHex(encodedTransactions))
	return errors.WithStack(err)
}
