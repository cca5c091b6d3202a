package txserialization

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/kaspanet/utxoledger/domain/ledger/model/externalapi"
	"github.com/kaspanet/utxoledger/util/binaryserializer"
	"github.com/pkg/errors"
)

// EncodeTransaction returns the wire encoding of tx:
//
//	id          length-prefixed string
//	timestamp   uint64
//	inputs      uint8 count
//	outputs     uint8 count
//	per input:  txId (length-prefixed), outputIndex (uint8),
//	            owner (length-prefixed), signature (length-prefixed)
//	per output: amount (uint64), recipient (length-prefixed)
//
// All integers are big-endian. A transaction that does not fit the format
// fails with ErrEncodingLimitExceeded.
func EncodeTransaction(tx *externalapi.Transaction) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.Grow(EncodedSize(tx))
	err := EncodeTransactionToWriter(buf, tx)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTransactionToWriter writes the wire encoding of tx to w. Limits are
// checked before anything is written.
func EncodeTransactionToWriter(w io.Writer, tx *externalapi.Transaction) error {
	err := checkTransactionLimits(tx)
	if err != nil {
		return err
	}

	err = writeString(w, tx.ID)
	if err != nil {
		return err
	}
	err = binaryserializer.PutUint64(w, tx.Timestamp)
	if err != nil {
		return err
	}
	err = binaryserializer.PutUint8(w, uint8(len(tx.Inputs)))
	if err != nil {
		return err
	}
	err = binaryserializer.PutUint8(w, uint8(len(tx.Outputs)))
	if err != nil {
		return err
	}

	for _, input := range tx.Inputs {
		err = writeInput(w, input)
		if err != nil {
			return err
		}
	}
	for _, output := range tx.Outputs {
		err = writeOutput(w, output)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeInput(w io.Writer, input *externalapi.TransactionInput) error {
	err := writeString(w, input.UTXOID.TxID)
	if err != nil {
		return err
	}
	err = binaryserializer.PutUint8(w, uint8(input.UTXOID.OutputIndex))
	if err != nil {
		return err
	}
	err = writeString(w, input.Owner)
	if err != nil {
		return err
	}
	return writeString(w, input.Signature)
}

func writeOutput(w io.Writer, output *externalapi.TransactionOutput) error {
	err := binaryserializer.PutUint64(w, uint64(output.Amount))
	if err != nil {
		return err
	}
	return writeString(w, output.Recipient)
}

func checkTransactionLimits(tx *externalapi.Transaction) error {
	if tx == nil {
		return errors.New("cannot encode a nil transaction")
	}
	err := checkString(tx.ID, "id")
	if err != nil {
		return err
	}
	err = checkCount(len(tx.Inputs), "inputs")
	if err != nil {
		return err
	}
	err = checkCount(len(tx.Outputs), "outputs")
	if err != nil {
		return err
	}

	for i, input := range tx.Inputs {
		if input == nil {
			return errors.Errorf("inputs[%d] is nil", i)
		}
		err = checkString(input.UTXOID.TxID, fmt.Sprintf("inputs[%d].utxoId.txId", i))
		if err != nil {
			return err
		}
		if input.UTXOID.OutputIndex > MaxOutputIndex {
			return errors.Wrapf(ErrEncodingLimitExceeded, "inputs[%d].utxoId.outputIndex is %d, "+
				"which is higher than the maximum of %d", i, input.UTXOID.OutputIndex, MaxOutputIndex)
		}
		err = checkString(input.Owner, fmt.Sprintf("inputs[%d].owner", i))
		if err != nil {
			return err
		}
		err = checkString(input.Signature, fmt.Sprintf("inputs[%d].signature", i))
		if err != nil {
			return err
		}
	}

	for i, output := range tx.Outputs {
		if output == nil {
			return errors.Errorf("outputs[%d] is nil", i)
		}
		if output.Amount < 0 {
			return errors.Wrapf(ErrEncodingLimitExceeded, "outputs[%d].amount is %d, "+
				"negative amounts cannot be encoded", i, output.Amount)
		}
		err = checkString(output.Recipient, fmt.Sprintf("outputs[%d].recipient", i))
		if err != nil {
			return err
		}
	}
	return nil
}

// EncodedSize returns the number of bytes EncodeTransaction produces for tx,
// assuming it fits the format.
func EncodedSize(tx *externalapi.Transaction) int {
	if tx == nil {
		return 0
	}
	size := 1 + len(tx.ID) + 8 + 1 + 1
	for _, input := range tx.Inputs {
		if input == nil {
			continue
		}
		size += 1 + len(input.UTXOID.TxID) + 1 + 1 + len(input.Owner) + 1 + len(input.Signature)
	}
	for _, output := range tx.Outputs {
		if output == nil {
			continue
		}
		size += 8 + 1 + len(output.Recipient)
	}
	return size
}

// DecodeTransaction decodes a transaction encoded by EncodeTransaction. The
// data must hold exactly one transaction: truncated data, a length prefix
// that runs past the end, or trailing bytes fail with ErrMalformedInput.
// Output amounts are signed, so a wire amount above math.MaxInt64 also fails
// with ErrMalformedInput even though EncodeTransaction's u64 field can hold it.
func DecodeTransaction(data []byte) (*externalapi.Transaction, error) {
	r := bytes.NewReader(data)
	tx, err := DecodeTransactionFromReader(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, errors.Wrapf(ErrMalformedInput, "%d trailing bytes after the transaction", r.Len())
	}
	return tx, nil
}

// DecodeTransactionFromReader reads a single transaction from r, leaving any
// data after it unread.
func DecodeTransactionFromReader(r io.Reader) (*externalapi.Transaction, error) {
	id, err := readString(r, "id")
	if err != nil {
		return nil, err
	}
	timestamp, err := readUint64(r, "timestamp")
	if err != nil {
		return nil, err
	}
	inputCount, err := readUint8(r, "input count")
	if err != nil {
		return nil, err
	}
	outputCount, err := readUint8(r, "output count")
	if err != nil {
		return nil, err
	}

	tx := &externalapi.Transaction{
		ID:        id,
		Timestamp: timestamp,
		Inputs:    make([]*externalapi.TransactionInput, inputCount),
		Outputs:   make([]*externalapi.TransactionOutput, outputCount),
	}
	for i := range tx.Inputs {
		tx.Inputs[i], err = readInput(r, i)
		if err != nil {
			return nil, err
		}
	}
	for i := range tx.Outputs {
		tx.Outputs[i], err = readOutput(r, i)
		if err != nil {
			return nil, err
		}
	}
	return tx, nil
}

func readInput(r io.Reader, index int) (*externalapi.TransactionInput, error) {
	field := fmt.Sprintf("inputs[%d]", index)
	txID, err := readString(r, field+".utxoId.txId")
	if err != nil {
		return nil, err
	}
	outputIndex, err := readUint8(r, field+".utxoId.outputIndex")
	if err != nil {
		return nil, err
	}
	owner, err := readString(r, field+".owner")
	if err != nil {
		return nil, err
	}
	signature, err := readString(r, field+".signature")
	if err != nil {
		return nil, err
	}
	return &externalapi.TransactionInput{
		UTXOID:    externalapi.NewUTXOID(txID, uint32(outputIndex)),
		Owner:     owner,
		Signature: signature,
	}, nil
}

func readOutput(r io.Reader, index int) (*externalapi.TransactionOutput, error) {
	field := fmt.Sprintf("outputs[%d]", index)
	amount, err := readUint64(r, field+".amount")
	if err != nil {
		return nil, err
	}
	if amount > math.MaxInt64 {
		return nil, errors.Wrapf(ErrMalformedInput, "%s.amount %d is out of range", field, amount)
	}
	recipient, err := readString(r, field+".recipient")
	if err != nil {
		return nil, err
	}
	return &externalapi.TransactionOutput{
		Amount:    int64(amount),
		Recipient: recipient,
	}, nil
}
