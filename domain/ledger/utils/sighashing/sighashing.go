package sighashing

import (
	"bytes"
	"encoding/json"

	"github.com/kaspanet/utxoledger/domain/ledger/model/externalapi"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// HashSize is the size of a signing hash in bytes.
const HashSize = blake2b.Size256

// unsignedInput is an input without its signature. A signature cannot sign
// over itself, so it is never part of the payload.
type unsignedInput struct {
	UTXOID externalapi.UTXOID `json:"utxoId"`
	Owner  string             `json:"owner"`
}

type unsignedOutput struct {
	Amount    int64  `json:"amount"`
	Recipient string `json:"recipient"`
}

// unsignedTransaction fixes the key order of the payload.
type unsignedTransaction struct {
	ID        string           `json:"id"`
	Inputs    []unsignedInput  `json:"inputs"`
	Outputs   []unsignedOutput `json:"outputs"`
	Timestamp uint64           `json:"timestamp"`
}

// SigningPayload returns the canonical serialization of tx that input
// signatures are made over: compact JSON of its id, inputs (UTXO id and
// owner only), outputs and timestamp, in that key order. Two transactions
// that differ only in their signatures have byte-identical payloads. A nil
// input or output has no payload.
func SigningPayload(tx *externalapi.Transaction) ([]byte, error) {
	unsigned := unsignedTransaction{
		ID:        tx.ID,
		Inputs:    make([]unsignedInput, len(tx.Inputs)),
		Outputs:   make([]unsignedOutput, len(tx.Outputs)),
		Timestamp: tx.Timestamp,
	}
	for i, input := range tx.Inputs {
		if input == nil {
			return nil, errors.Errorf("transaction %s has a nil input at index %d", tx.ID, i)
		}
		unsigned.Inputs[i] = unsignedInput{UTXOID: input.UTXOID, Owner: input.Owner}
	}
	for i, output := range tx.Outputs {
		if output == nil {
			return nil, errors.Errorf("transaction %s has a nil output at index %d", tx.ID, i)
		}
		unsigned.Outputs[i] = unsignedOutput{Amount: output.Amount, Recipient: output.Recipient}
	}

	buf := &bytes.Buffer{}
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	err := encoder.Encode(unsigned)
	if err != nil {
		return nil, errors.Wrapf(err, "failed serializing the signing payload of transaction %s", tx.ID)
	}
	// Encode terminates the value with a newline that is not part of it.
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// SigningHash returns the blake2b-256 digest of payload. Signature schemes
// that sign a fixed-size message sign this digest.
func SigningHash(payload []byte) [HashSize]byte {
	return blake2b.Sum256(payload)
}

// TransactionSigningHash returns SigningHash of the signing payload of tx.
func TransactionSigningHash(tx *externalapi.Transaction) ([HashSize]byte, error) {
	payload, err := SigningPayload(tx)
	if err != nil {
		return [HashSize]byte{}, err
	}
	return SigningHash(payload), nil
}
