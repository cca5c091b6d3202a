package main

import (
	"io"

	"github.com/kaspanet/utxoledger/domain/ledger/utils/txsigning"
)

func sign(conf *signConfig, out io.Writer) error {
	transactions, err := readTransactionsFile(conf.TransactionFile)
	if err != nil {
		return err
	}
	signer, err := txsigning.NewSigner(conf.ActiveScheme, conf.PrivateKey)
	if err != nil {
		return err
	}

	for _, tx := range transactions {
		signedInputs, err := txsigning.SignTransaction(tx, signer)
		if err != nil {
			return err
		}
		if signedInputs == 0 {
			log.Warnf("Transaction %s has no inputs owned by %s", tx.ID, signer.Owner())
		}
	}

	if len(transactions) == 1 {
		return printJSON(out, transactions[0])
	}
	return printJSON(out, transactions)
}
