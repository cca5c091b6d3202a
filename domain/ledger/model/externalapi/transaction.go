package externalapi

import "fmt"

// Transaction is a ledger transaction. It spends the UTXOs referenced by its
// inputs and creates its outputs.
type Transaction struct {
	ID        string               `json:"id"`
	Timestamp uint64               `json:"timestamp"`
	Inputs    []*TransactionInput  `json:"inputs"`
	Outputs   []*TransactionOutput `json:"outputs"`
}

// Clone returns a deep copy of the transaction.
func (tx *Transaction) Clone() *Transaction {
	if tx == nil {
		return nil
	}

	inputsClone := make([]*TransactionInput, len(tx.Inputs))
	for i, input := range tx.Inputs {
		inputsClone[i] = input.Clone()
	}

	outputsClone := make([]*TransactionOutput, len(tx.Outputs))
	for i, output := range tx.Outputs {
		outputsClone[i] = output.Clone()
	}

	return &Transaction{
		ID:        tx.ID,
		Timestamp: tx.Timestamp,
		Inputs:    inputsClone,
		Outputs:   outputsClone,
	}
}

// Equal returns whether tx equals to other. A nil and an empty input or
// output list are considered equal.
func (tx *Transaction) Equal(other *Transaction) bool {
	if tx == nil || other == nil {
		return tx == other
	}

	if tx.ID != other.ID || tx.Timestamp != other.Timestamp {
		return false
	}

	if len(tx.Inputs) != len(other.Inputs) {
		return false
	}
	for i, input := range tx.Inputs {
		if !input.Equal(other.Inputs[i]) {
			return false
		}
	}

	if len(tx.Outputs) != len(other.Outputs) {
		return false
	}
	for i, output := range tx.Outputs {
		if !output.Equal(other.Outputs[i]) {
			return false
		}
	}

	return true
}

// TransactionInput spends a single UTXO.
type TransactionInput struct {
	UTXOID UTXOID `json:"utxoId"`

	// Owner is the public identity that claims the UTXO.
	Owner string `json:"owner"`

	// Signature is made by Owner over the transaction's signing payload.
	Signature string `json:"signature"`
}

// Clone returns a copy of the input.
func (input *TransactionInput) Clone() *TransactionInput {
	if input == nil {
		return nil
	}
	clone := *input
	return &clone
}

// Equal returns whether input equals to other.
func (input *TransactionInput) Equal(other *TransactionInput) bool {
	if input == nil || other == nil {
		return input == other
	}
	return input.UTXOID == other.UTXOID &&
		input.Owner == other.Owner &&
		input.Signature == other.Signature
}

// UTXOID identifies the output of a previous transaction.
type UTXOID struct {
	TxID        string `json:"txId"`
	OutputIndex uint32 `json:"outputIndex"`
}

// NewUTXOID returns a UTXOID for the given transaction output.
func NewUTXOID(txID string, outputIndex uint32) UTXOID {
	return UTXOID{TxID: txID, OutputIndex: outputIndex}
}

// String stringifies a UTXOID as txID:outputIndex.
func (id UTXOID) String() string {
	return fmt.Sprintf("%s:%d", id.TxID, id.OutputIndex)
}

// TransactionOutput assigns Amount to Recipient.
//
// Amount is signed so that a non-positive amount can be represented and
// reported by validation. Only non-negative amounts can be encoded.
type TransactionOutput struct {
	Amount    int64  `json:"amount"`
	Recipient string `json:"recipient"`
}

// Clone returns a copy of the output.
func (output *TransactionOutput) Clone() *TransactionOutput {
	if output == nil {
		return nil
	}
	clone := *output
	return &clone
}

// Equal returns whether output equals to other.
func (output *TransactionOutput) Equal(other *TransactionOutput) bool {
	if output == nil || other == nil {
		return output == other
	}
	return output.Amount == other.Amount && output.Recipient == other.Recipient
}
