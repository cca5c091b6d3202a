package binaryserializer

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// maxItems is the number of scratch buffers kept in the free list.
const maxItems = 1024

// byteOrder is the byte order of every multi-byte integer on the wire.
var byteOrder = binary.BigEndian

// borrow returns an 8 byte scratch buffer from the free list, allocating a
// new one if the list is empty.
func borrow() []byte {
	var buf []byte
	select {
	case buf = <-binaryFreeList:
	default:
		buf = make([]byte, 8)
	}
	return buf[:8]
}

// giveBack puts a buffer obtained through borrow back on the free list.
func giveBack(buf []byte) {
	select {
	case binaryFreeList <- buf[:cap(buf)]:
	default:
		// Let it go to the garbage collector.
	}
}

// Uint8 reads a single byte from r.
func Uint8(r io.Reader) (uint8, error) {
	buf := borrow()[:1]
	defer giveBack(buf)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, errors.WithStack(err)
	}
	return buf[0], nil
}

// Uint32 reads four big-endian bytes from r and returns them as a uint32.
func Uint32(r io.Reader) (uint32, error) {
	buf := borrow()[:4]
	defer giveBack(buf)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, errors.WithStack(err)
	}
	return byteOrder.Uint32(buf), nil
}

// Uint64 reads eight big-endian bytes from r and returns them as a uint64.
func Uint64(r io.Reader) (uint64, error) {
	buf := borrow()
	defer giveBack(buf)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, errors.WithStack(err)
	}
	return byteOrder.Uint64(buf), nil
}

// Bytes reads exactly length bytes from r. A reader that ends before length
// bytes were read yields io.ErrUnexpectedEOF (or io.EOF when nothing at all
// could be read), wrapped with a stack.
func Bytes(r io.Reader, length int) ([]byte, error) {
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.WithStack(err)
	}
	return buf, nil
}

// PutUint8 writes val to w as a single byte.
func PutUint8(w io.Writer, val uint8) error {
	buf := borrow()[:1]
	defer giveBack(buf)
	buf[0] = val
	_, err := w.Write(buf)
	return errors.WithStack(err)
}

// PutUint32 writes val to w as four big-endian bytes.
func PutUint32(w io.Writer, val uint32) error {
	buf := borrow()[:4]
	defer giveBack(buf)
	byteOrder.PutUint32(buf, val)
	_, err := w.Write(buf)
	return errors.WithStack(err)
}

// PutUint64 writes val to w as eight big-endian bytes.
func PutUint64(w io.Writer, val uint64) error {
	buf := borrow()
	defer giveBack(buf)
	byteOrder.PutUint64(buf, val)
	_, err := w.Write(buf)
	return errors.WithStack(err)
}

// binaryFreeList is a concurrent safe free list of 8 byte buffers used as
// scratch space when reading and writing fixed-width integers, so that
// encoding a transaction does not allocate per field.
var binaryFreeList = make(chan []byte, maxItems)
