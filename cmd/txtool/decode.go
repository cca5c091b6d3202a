package main

import (
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/utxoledger/domain/ledger/model/externalapi"
	"github.com/kaspanet/utxoledger/domain/ledger/utils/txserialization"
	"github.com/pkg/errors"
)

func decode(conf *decodeConfig, out io.Writer) error {
	encodedTransactions, err := decodeTransactionsFromHex(conf.Transaction)
	if err != nil {
		return err
	}

	transactions := make([]*externalapi.Transaction, len(encodedTransactions))
	for i, encodedTransaction := range encodedTransactions {
		transactions[i], err = txserialization.DecodeTransaction(encodedTransaction)
		if err != nil {
			return errors.Wrapf(err, "could not decode transaction %d", i)
		}
	}

	if conf.Dump {
		spew.Fdump(out, transactions)
		return nil
	}
	if len(transactions) == 1 {
		return printJSON(out, transactions[0])
	}
	return printJSON(out, transactions)
}
