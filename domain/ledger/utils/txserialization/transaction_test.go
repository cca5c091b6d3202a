package txserialization

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/utxoledger/domain/ledger/model/externalapi"
)

func exampleTransaction() *externalapi.Transaction {
	return &externalapi.Transaction{
		ID:        "tx123",
		Timestamp: 1625247600,
		Inputs: []*externalapi.TransactionInput{
			{UTXOID: externalapi.NewUTXOID("utxo1", 0), Owner: "Alice", Signature: "sig1"},
		},
		Outputs: []*externalapi.TransactionOutput{
			{Amount: 1000, Recipient: "Bob"},
		},
	}
}

// exampleTransactionBytes is the encoding of exampleTransaction.
var exampleTransactionBytes = []byte{
	0x05, 't', 'x', '1', '2', '3', // id
	0x00, 0x00, 0x00, 0x00, 0x60, 0xdf, 0x4f, 0x70, // timestamp
	0x01, // input count
	0x01, // output count
	0x05, 'u', 't', 'x', 'o', '1', // inputs[0].utxoId.txId
	0x00,                          // inputs[0].utxoId.outputIndex
	0x05, 'A', 'l', 'i', 'c', 'e', // inputs[0].owner
	0x04, 's', 'i', 'g', '1', // inputs[0].signature
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03, 0xe8, // outputs[0].amount
	0x03, 'B', 'o', 'b', // outputs[0].recipient
}

func TestEncodeTransactionLayout(t *testing.T) {
	tx := exampleTransaction()
	encoded, err := EncodeTransaction(tx)
	if err != nil {
		t.Fatalf("TestEncodeTransactionLayout: EncodeTransaction unexpectedly failed: %s", err)
	}
	if !bytes.Equal(encoded, exampleTransactionBytes) {
		t.Fatalf("TestEncodeTransactionLayout: wrong encoding:\n got: %s want: %s",
			spew.Sdump(encoded), spew.Sdump(exampleTransactionBytes))
	}
	if EncodedSize(tx) != len(encoded) {
		t.Fatalf("TestEncodeTransactionLayout: EncodedSize returned %d, expected %d", EncodedSize(tx), len(encoded))
	}

	asJSON, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("TestEncodeTransactionLayout: json.Marshal unexpectedly failed: %s", err)
	}
	if len(encoded) >= len(asJSON) {
		t.Fatalf("TestEncodeTransactionLayout: binary encoding (%d bytes) is expected to be shorter "+
			"than JSON (%d bytes)", len(encoded), len(asJSON))
	}

	decoded, err := DecodeTransaction(exampleTransactionBytes)
	if err != nil {
		t.Fatalf("TestEncodeTransactionLayout: DecodeTransaction unexpectedly failed: %s", err)
	}
	if !decoded.Equal(tx) {
		t.Fatalf("TestEncodeTransactionLayout: wrong decoded transaction:\n got: %s want: %s",
			spew.Sdump(decoded), spew.Sdump(tx))
	}
}

func TestTransactionRoundTrip(t *testing.T) {
	longString := strings.Repeat("x", MaxStringLength)
	// 85 three-byte runes make exactly 255 bytes.
	longUnicode := strings.Repeat("€", MaxStringLength/3)

	manyInputs := make([]*externalapi.TransactionInput, MaxCount)
	for i := range manyInputs {
		manyInputs[i] = &externalapi.TransactionInput{
			UTXOID:    externalapi.NewUTXOID("prev", uint32(i)),
			Owner:     "owner",
			Signature: "signature",
		}
	}
	manyOutputs := make([]*externalapi.TransactionOutput, MaxCount)
	for i := range manyOutputs {
		manyOutputs[i] = &externalapi.TransactionOutput{Amount: int64(i), Recipient: "recipient"}
	}

	tests := []struct {
		name string
		tx   *externalapi.Transaction
	}{
		{
			name: "example",
			tx:   exampleTransaction(),
		},
		{
			name: "empty",
			tx:   &externalapi.Transaction{},
		},
		{
			name: "empty strings",
			tx: &externalapi.Transaction{
				Inputs:  []*externalapi.TransactionInput{{}},
				Outputs: []*externalapi.TransactionOutput{{}},
			},
		},
		{
			name: "maximal values",
			tx: &externalapi.Transaction{
				ID:        longString,
				Timestamp: math.MaxUint64,
				Inputs: []*externalapi.TransactionInput{
					{
						UTXOID:    externalapi.NewUTXOID(longString, MaxOutputIndex),
						Owner:     longUnicode,
						Signature: longString,
					},
				},
				Outputs: []*externalapi.TransactionOutput{
					{Amount: math.MaxInt64, Recipient: longUnicode},
				},
			},
		},
		{
			name: "unicode",
			tx: &externalapi.Transaction{
				ID:        "交易-1",
				Timestamp: 42,
				Inputs: []*externalapi.TransactionInput{
					{UTXOID: externalapi.NewUTXOID("prévio", 7), Owner: "Álvaro", Signature: "✍"},
				},
				Outputs: []*externalapi.TransactionOutput{
					{Amount: 5, Recipient: "Zoë"},
				},
			},
		},
		{
			name: "maximal counts",
			tx: &externalapi.Transaction{
				ID:      "many",
				Inputs:  manyInputs,
				Outputs: manyOutputs,
			},
		},
	}

	for _, test := range tests {
		encoded, err := EncodeTransaction(test.tx)
		if err != nil {
			t.Fatalf("TestTransactionRoundTrip: %s: EncodeTransaction unexpectedly failed: %s", test.name, err)
		}
		if len(encoded) != EncodedSize(test.tx) {
			t.Fatalf("TestTransactionRoundTrip: %s: encoded %d bytes, EncodedSize returned %d",
				test.name, len(encoded), EncodedSize(test.tx))
		}
		decoded, err := DecodeTransaction(encoded)
		if err != nil {
			t.Fatalf("TestTransactionRoundTrip: %s: DecodeTransaction unexpectedly failed: %s", test.name, err)
		}
		if !decoded.Equal(test.tx) {
			t.Fatalf("TestTransactionRoundTrip: %s: round trip changed the transaction:\n got: %s want: %s",
				test.name, spew.Sdump(decoded), spew.Sdump(test.tx))
		}
	}
}

func TestEncodeTransactionLimits(t *testing.T) {
	tooLong := strings.Repeat("y", MaxStringLength+1)
	// 128 two-byte runes: 128 characters but 256 bytes.
	tooLongInBytes := strings.Repeat("é", 128)

	tests := []struct {
		name   string
		mutate func(tx *externalapi.Transaction)
	}{
		{"id", func(tx *externalapi.Transaction) { tx.ID = tooLong }},
		{"id in bytes", func(tx *externalapi.Transaction) { tx.ID = tooLongInBytes }},
		{"utxo tx id", func(tx *externalapi.Transaction) { tx.Inputs[0].UTXOID.TxID = tooLong }},
		{"output index", func(tx *externalapi.Transaction) { tx.Inputs[0].UTXOID.OutputIndex = MaxOutputIndex + 1 }},
		{"owner", func(tx *externalapi.Transaction) { tx.Inputs[0].Owner = tooLong }},
		{"signature", func(tx *externalapi.Transaction) { tx.Inputs[0].Signature = tooLong }},
		{"recipient", func(tx *externalapi.Transaction) { tx.Outputs[0].Recipient = tooLongInBytes }},
		{"negative amount", func(tx *externalapi.Transaction) { tx.Outputs[0].Amount = -5 }},
		{"input count", func(tx *externalapi.Transaction) {
			for len(tx.Inputs) <= MaxCount {
				tx.Inputs = append(tx.Inputs, tx.Inputs[0].Clone())
			}
		}},
		{"output count", func(tx *externalapi.Transaction) {
			for len(tx.Outputs) <= MaxCount {
				tx.Outputs = append(tx.Outputs, tx.Outputs[0].Clone())
			}
		}},
	}

	for _, test := range tests {
		tx := exampleTransaction()
		test.mutate(tx)

		encoded, err := EncodeTransaction(tx)
		if err == nil {
			t.Fatalf("TestEncodeTransactionLimits: %s: EncodeTransaction unexpectedly succeeded", test.name)
		}
		if !IsEncodingLimitError(err) {
			t.Fatalf("TestEncodeTransactionLimits: %s: expected ErrEncodingLimitExceeded, got: %s", test.name, err)
		}
		if encoded != nil {
			t.Fatalf("TestEncodeTransactionLimits: %s: expected no bytes, got %x", test.name, encoded)
		}

		buf := &bytes.Buffer{}
		err = EncodeTransactionToWriter(buf, tx)
		if !IsEncodingLimitError(err) {
			t.Fatalf("TestEncodeTransactionLimits: %s: expected ErrEncodingLimitExceeded from the writer, got: %v",
				test.name, err)
		}
		if buf.Len() != 0 {
			t.Fatalf("TestEncodeTransactionLimits: %s: %d bytes were written before failing", test.name, buf.Len())
		}
	}
}

func TestEncodeTransactionNil(t *testing.T) {
	_, err := EncodeTransaction(nil)
	if err == nil {
		t.Fatalf("TestEncodeTransactionNil: encoding a nil transaction unexpectedly succeeded")
	}

	tx := exampleTransaction()
	tx.Outputs[0] = nil
	_, err = EncodeTransaction(tx)
	if err == nil {
		t.Fatalf("TestEncodeTransactionNil: encoding a nil output unexpectedly succeeded")
	}
}

func TestDecodeTruncatedTransaction(t *testing.T) {
	for length := 0; length < len(exampleTransactionBytes); length++ {
		_, err := DecodeTransaction(exampleTransactionBytes[:length])
		if err == nil {
			t.Fatalf("TestDecodeTruncatedTransaction: decoding the first %d bytes unexpectedly succeeded", length)
		}
		if !IsMalformedError(err) {
			t.Fatalf("TestDecodeTruncatedTransaction: decoding the first %d bytes: expected ErrMalformedInput, got: %s",
				length, err)
		}
	}
}

func TestDecodeMalformedTransaction(t *testing.T) {
	withTrailingByte := append(append([]byte{}, exampleTransactionBytes...), 0x00)

	outOfRangeAmount := append([]byte{}, exampleTransactionBytes...)
	amountOffset := len(outOfRangeAmount) - 4 - 8
	outOfRangeAmount[amountOffset] = 0x80

	tests := []struct {
		name string
		data []byte
	}{
		{"length prefix past the end", []byte{0x05, 't', 'x'}},
		{"length prefix with nothing after it", []byte{0xff}},
		{"missing outputs", []byte{0x00, 0, 0, 0, 0, 0, 0, 0, 0, 0x00, 0x01}},
		{"missing inputs", []byte{0x00, 0, 0, 0, 0, 0, 0, 0, 0, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00}},
		{"trailing bytes", withTrailingByte},
		{"amount above the signed range", outOfRangeAmount},
	}

	for _, test := range tests {
		tx, err := DecodeTransaction(test.data)
		if err == nil {
			t.Fatalf("TestDecodeMalformedTransaction: %s: unexpectedly decoded %s", test.name, spew.Sdump(tx))
		}
		if !IsMalformedError(err) {
			t.Fatalf("TestDecodeMalformedTransaction: %s: expected ErrMalformedInput, got: %s", test.name, err)
		}
	}
}

func TestDecodeTransactionFromReader(t *testing.T) {
	second := exampleTransaction()
	second.ID = "tx124"
	secondBytes, err := EncodeTransaction(second)
	if err != nil {
		t.Fatalf("TestDecodeTransactionFromReader: EncodeTransaction unexpectedly failed: %s", err)
	}

	stream := bytes.NewReader(append(append([]byte{}, exampleTransactionBytes...), secondBytes...))
	for _, expected := range []*externalapi.Transaction{exampleTransaction(), second} {
		tx, err := DecodeTransactionFromReader(stream)
		if err != nil {
			t.Fatalf("TestDecodeTransactionFromReader: unexpected error: %s", err)
		}
		if !tx.Equal(expected) {
			t.Fatalf("TestDecodeTransactionFromReader: got %s want %s", spew.Sdump(tx), spew.Sdump(expected))
		}
	}
	if stream.Len() != 0 {
		t.Fatalf("TestDecodeTransactionFromReader: %d bytes left unread", stream.Len())
	}
}
