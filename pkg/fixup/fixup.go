// Package fixup writes object graphs into a single relocatable buffer.
//
// Generated Serialize methods write fixed-size values in place and reserve a
// pointer slot (a fixup) for everything stored out of line. Once the
// out-of-line data is about to be written the slot is resolved to the current
// position. Finish patches every slot with the offset of its target and
// appends a relocation table, so a reader can load the buffer in one go and
// turn the offsets into addresses with a single pass over the table.
package fixup

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"fortio.org/safecast"
)

// SlotSize is the size of a pointer slot. Slots are always 64 bits so the
// same buffer can be read on 32 and 64 bit platforms.
const SlotSize = 8

var (
	ErrUnknownFixup    = errors.New("unknown or already resolved fixup")
	ErrUnresolvedFixup = errors.New("fixup created but never resolved")
	ErrCorruptTable    = errors.New("corrupt relocation table")
)

// Handle identifies a reserved slot until it is resolved.
type Handle uint32

// Writer is what generated Serialize methods write to.
type Writer interface {
	WriteBool(v bool)
	WriteInt32(v int32)
	WriteFloat32(v float32)
	// WriteString writes the bytes of s followed by a NUL terminator.
	WriteString(s string)
	// WriteCount writes the element count of a variable-length array.
	WriteCount(n int)
	// CreateFixup reserves a pointer slot at the current position.
	CreateFixup() Handle
	// InsertFixup resolves h to the current position, i.e. to the data
	// written next.
	InsertFixup(h Handle)
}

type Serializer interface {
	Serialize(w Writer)
}

type localFixup struct {
	ref uint32
	dst uint32
}

// Buffer is an in-memory Writer. Values are little endian. Errors are
// sticky: after the first one every write is a no-op and Finish returns it.
type Buffer struct {
	buf     []byte
	pending map[Handle]uint32
	locals  []localFixup
	next    Handle
	err     error
}

func NewBuffer() *Buffer {
	return &Buffer{
		buf:     make([]byte, 0, 256),
		pending: make(map[Handle]uint32),
		locals:  make([]localFixup, 0),
	}
}

// Marshal serializes v into a finished buffer.
func Marshal(v Serializer) ([]byte, error) {
	b := NewBuffer()
	v.Serialize(b)
	return b.Finish()
}

func (b *Buffer) Err() error {
	return b.err
}

// Len is the current write position.
func (b *Buffer) Len() int {
	return len(b.buf)
}

func (b *Buffer) WriteBool(v bool) {
	if b.err != nil {
		return
	}

	if v {
		b.buf = append(b.buf, 1)
	} else {
		b.buf = append(b.buf, 0)
	}
}

func (b *Buffer) WriteInt32(v int32) {
	if b.err != nil {
		return
	}

	b.buf = binary.LittleEndian.AppendUint32(b.buf, uint32(v))
}

func (b *Buffer) WriteFloat32(v float32) {
	if b.err != nil {
		return
	}

	b.buf = binary.LittleEndian.AppendUint32(b.buf, math.Float32bits(v))
}

func (b *Buffer) WriteString(s string) {
	if b.err != nil {
		return
	}

	b.buf = append(b.buf, s...)
	b.buf = append(b.buf, 0)
}

func (b *Buffer) WriteCount(n int) {
	if b.err != nil {
		return
	}

	c, err := safecast.Conv[int32](n)
	if err != nil {
		b.fail(fmt.Errorf("array too long: %w", err))
		return
	}

	b.WriteInt32(c)
}

func (b *Buffer) CreateFixup() Handle {
	if b.err != nil {
		return 0
	}

	pos, ok := b.pos()
	if !ok {
		return 0
	}

	h := b.next
	b.next += 1
	b.pending[h] = pos

	b.buf = binary.LittleEndian.AppendUint64(b.buf, 0)

	return h
}

func (b *Buffer) InsertFixup(h Handle) {
	if b.err != nil {
		return
	}

	ref, ok := b.pending[h]
	if !ok {
		b.fail(fmt.Errorf("fixup %d: %w", h, ErrUnknownFixup))
		return
	}

	dst, ok := b.pos()
	if !ok {
		return
	}

	b.locals = append(b.locals, localFixup{ref: ref, dst: dst})
	delete(b.pending, h)
}

// Relocations returns the offsets of every resolved slot, in resolution
// order.
func (b *Buffer) Relocations() []uint32 {
	refs := make([]uint32, len(b.locals))
	for i, lf := range b.locals {
		refs[i] = lf.ref
	}

	return refs
}

// Finish patches all slots and returns the payload followed by the
// relocation table: one uint32 slot offset per fixup and then the number of
// entries as a uint32. The buffer must not be written to afterwards.
func (b *Buffer) Finish() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}

	if len(b.pending) > 0 {
		return nil, fmt.Errorf("%d pending: %w", len(b.pending), ErrUnresolvedFixup)
	}

	out := make([]byte, len(b.buf), len(b.buf)+4*len(b.locals)+4)
	copy(out, b.buf)

	for _, lf := range b.locals {
		binary.LittleEndian.PutUint64(out[lf.ref:lf.ref+SlotSize], uint64(lf.dst))
	}

	for _, lf := range b.locals {
		out = binary.LittleEndian.AppendUint32(out, lf.ref)
	}

	n, err := safecast.Conv[uint32](len(b.locals))
	if err != nil {
		return nil, fmt.Errorf("too many fixups: %w", err)
	}

	return binary.LittleEndian.AppendUint32(out, n), nil
}

// WriteTo finishes the buffer and writes the result to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	out, err := b.Finish()
	if err != nil {
		return 0, err
	}

	n, err := w.Write(out)
	return int64(n), err
}

// Split separates a finished buffer into its payload and relocation table.
func Split(data []byte) ([]byte, []uint32, error) {
	if len(data) < 4 {
		return nil, nil, ErrCorruptTable
	}

	n := int(binary.LittleEndian.Uint32(data[len(data)-4:]))
	tableStart := len(data) - 4 - 4*n
	if n < 0 || tableStart < 0 {
		return nil, nil, ErrCorruptTable
	}

	payload := data[:tableStart]
	refs := make([]uint32, n)

	for i := range refs {
		off := tableStart + 4*i
		refs[i] = binary.LittleEndian.Uint32(data[off : off+4])

		if int(refs[i])+SlotSize > len(payload) {
			return nil, nil, ErrCorruptTable
		}
	}

	return payload, refs, nil
}

func (b *Buffer) pos() (uint32, bool) {
	pos, err := safecast.Conv[uint32](len(b.buf))
	if err != nil {
		b.fail(fmt.Errorf("buffer exceeds 4GiB: %w", err))
		return 0, false
	}

	return pos, true
}

func (b *Buffer) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

var _ Writer = (*Buffer)(nil)
