package fixup

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	assert "github.com/stretchr/testify/require"
)

func u32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off:])
}

func u64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off:])
}

func TestScalars(t *testing.T) {
	b := NewBuffer()
	b.WriteBool(true)
	b.WriteBool(false)
	b.WriteInt32(-2)
	b.WriteFloat32(1.5)
	b.WriteString("hi")
	b.WriteCount(3)

	out, err := b.Finish()
	assert.NoError(t, err)

	payload, refs, err := Split(out)
	assert.NoError(t, err)
	assert.Empty(t, refs)

	assert.Equal(t, []byte{1, 0}, payload[:2])
	assert.Equal(t, uint32(0xfffffffe), u32(payload, 2))
	assert.Equal(t, math.Float32bits(1.5), u32(payload, 6))
	assert.Equal(t, []byte("hi\x00"), payload[10:13])
	assert.Equal(t, uint32(3), u32(payload, 13))
	assert.Len(t, payload, 17)
}

func TestFixupPointsForward(t *testing.T) {
	b := NewBuffer()
	b.WriteInt32(7)
	h := b.CreateFixup()
	b.WriteInt32(8)
	b.InsertFixup(h)
	b.WriteString("data")

	out, err := b.Finish()
	assert.NoError(t, err)

	payload, refs, err := Split(out)
	assert.NoError(t, err)
	assert.Equal(t, []uint32{4}, refs)
	assert.Equal(t, uint64(16), u64(payload, 4))
	assert.Equal(t, []byte("data\x00"), payload[16:])
}

func TestUnresolvedFixup(t *testing.T) {
	b := NewBuffer()
	b.CreateFixup()

	_, err := b.Finish()
	assert.True(t, errors.Is(err, ErrUnresolvedFixup))
}

func TestInsertFixupTwice(t *testing.T) {
	b := NewBuffer()
	h := b.CreateFixup()
	b.InsertFixup(h)
	b.InsertFixup(h)

	assert.True(t, errors.Is(b.Err(), ErrUnknownFixup))

	// Errors are sticky.
	before := b.Len()
	b.WriteInt32(1)
	assert.Equal(t, before, b.Len())

	_, err := b.Finish()
	assert.True(t, errors.Is(err, ErrUnknownFixup))
}

func TestWriteTo(t *testing.T) {
	b := NewBuffer()
	b.WriteInt32(1)

	var out bytes.Buffer
	n, err := b.WriteTo(&out)
	assert.NoError(t, err)
	assert.Equal(t, int64(8), n)
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, out.Bytes())
}

func TestSplitCorrupt(t *testing.T) {
	_, _, err := Split([]byte{1, 2})
	assert.ErrorIs(t, err, ErrCorruptTable)

	_, _, err = Split([]byte{9, 0, 0, 0})
	assert.ErrorIs(t, err, ErrCorruptTable)

	// One entry pointing past the payload.
	data := []byte{0, 0, 0, 0}
	data = binary.LittleEndian.AppendUint32(data, 2)
	data = binary.LittleEndian.AppendUint32(data, 1)
	_, _, err = Split(data)
	assert.ErrorIs(t, err, ErrCorruptTable)
}
