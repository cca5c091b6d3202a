package txserialization

import (
	"io"
	"math"

	"github.com/kaspanet/utxoledger/util/binaryserializer"
	"github.com/pkg/errors"
)

// Limits of the wire format.
const (
	// MaxStringLength is the longest string, in bytes, a 1-byte length
	// prefix can describe.
	MaxStringLength = math.MaxUint8

	// MaxCount is the largest number of inputs or outputs.
	MaxCount = math.MaxUint8

	// MaxOutputIndex is the largest output index a UTXO reference can carry.
	MaxOutputIndex = math.MaxUint8
)

// ErrEncodingLimitExceeded indicates a value cannot be represented in the
// wire format. Nothing is written when it is returned.
var ErrEncodingLimitExceeded = errors.New("EncodingLimitExceeded")

// ErrMalformedInput indicates the data being decoded is not a valid encoding.
var ErrMalformedInput = errors.New("MalformedInput")

// IsMalformedError returns whether err indicates malformed input data.
func IsMalformedError(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

// IsEncodingLimitError returns whether err indicates a value outside the
// wire format's limits.
func IsEncodingLimitError(err error) bool {
	return errors.Is(err, ErrEncodingLimitExceeded)
}

// malformed turns a read failure into an ErrMalformedInput error. Reaching
// the end of the data early is the only way a read from memory fails.
func malformed(err error, field string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errors.Wrapf(ErrMalformedInput, "%s: data ended before the field was complete", field)
	}
	return errors.Wrapf(err, "failed reading %s", field)
}

func checkString(value string, field string) error {
	if len(value) > MaxStringLength {
		return errors.Wrapf(ErrEncodingLimitExceeded, "%s is %d bytes long, which is longer than the maximum of %d",
			field, len(value), MaxStringLength)
	}
	return nil
}

func checkCount(count int, field string) error {
	if count > MaxCount {
		return errors.Wrapf(ErrEncodingLimitExceeded, "%s has %d elements, which is more than the maximum of %d",
			field, count, MaxCount)
	}
	return nil
}

// writeString writes value as a 1-byte length followed by its bytes. The
// caller must have checked the length.
func writeString(w io.Writer, value string) error {
	err := binaryserializer.PutUint8(w, uint8(len(value)))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, value)
	return errors.WithStack(err)
}

func readString(r io.Reader, field string) (string, error) {
	length, err := binaryserializer.Uint8(r)
	if err != nil {
		return "", malformed(err, field+" length")
	}
	value, err := binaryserializer.Bytes(r, int(length))
	if err != nil {
		return "", malformed(err, field)
	}
	return string(value), nil
}

func readUint8(r io.Reader, field string) (uint8, error) {
	value, err := binaryserializer.Uint8(r)
	if err != nil {
		return 0, malformed(err, field)
	}
	return value, nil
}

func readUint64(r io.Reader, field string) (uint64, error) {
	value, err := binaryserializer.Uint64(r)
	if err != nil {
		return 0, malformed(err, field)
	}
	return value, nil
}
