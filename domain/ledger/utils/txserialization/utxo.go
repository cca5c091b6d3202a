package txserialization

import (
	"bytes"
	"io"
	"math"

	"github.com/kaspanet/utxoledger/domain/ledger/model/externalapi"
	"github.com/kaspanet/utxoledger/util/binaryserializer"
	"github.com/pkg/errors"
)

// EncodeUTXO returns a canonical byte representation of utxo: id, txId,
// outputIndex, amount and owner. It identifies a UTXO inside hash
// commitments and is never decoded. Unlike the transaction encoding it
// uses 4-byte length prefixes and a 4-byte output index, so every UTXO a
// pool can hold has an encoding.
func EncodeUTXO(utxo *externalapi.UTXO) ([]byte, error) {
	if utxo == nil {
		return nil, errors.New("cannot encode a nil UTXO")
	}

	buf := &bytes.Buffer{}
	err := writeLongString(buf, utxo.ID)
	if err != nil {
		return nil, err
	}
	err = writeLongString(buf, utxo.TxID)
	if err != nil {
		return nil, err
	}
	err = binaryserializer.PutUint32(buf, utxo.OutputIndex)
	if err != nil {
		return nil, err
	}
	err = binaryserializer.PutUint64(buf, utxo.Amount)
	if err != nil {
		return nil, err
	}
	err = writeLongString(buf, utxo.Owner)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeLongString(w io.Writer, value string) error {
	if uint64(len(value)) > math.MaxUint32 {
		return errors.Wrapf(ErrEncodingLimitExceeded, "string of %d bytes is too long", len(value))
	}
	err := binaryserializer.PutUint32(w, uint32(len(value)))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, value)
	return errors.WithStack(err)
}
