package main

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// hexTransactionsSeparator marks the end of one transaction and the beginning of the next one.
// It is not in the hex alphabet, and does not split the selection on a double click.
const hexTransactionsSeparator = "_"

func encodeTransactionsToHex(transactions [][]byte) string {
	transactionsInHex := make([]string, len(transactions))
	for i, transaction := range transactions {
		transactionsInHex[i] = hex.EncodeToString(transaction)
	}
	return strings.Join(transactionsInHex, hexTransactionsSeparator)
}

func decodeTransactionsFromHex(transactionsHex string) ([][]byte, error) {
	splitTransactionsHexes := strings.Split(strings.TrimSpace(transactionsHex), hexTransactionsSeparator)
	transactions := make([][]byte, len(splitTransactionsHexes))

	var err error
	for i, transactionHex := range splitTransactionsHexes {
		transactions[i], err = hex.DecodeString(transactionHex)
		if err != nil {
			return nil, errors.Wrapf(err, "transaction %d is not valid hex", i)
		}
	}

	return transactions, nil
}
