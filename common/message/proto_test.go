package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestEncodeDecode(t *testing.T) {
	e := NewEncoder()
	e.Int(1, -42)
	e.Bool(2, true)
	e.Double(3, 2.5)
	e.Float(4, -0.25)
	e.Message(5, func(sub *Encoder) {
		sub.Int(1, 7)
	})

	var fields []Field
	require.NoError(t, Decode(e.Bytes(), func(f Field) error {
		fields = append(fields, f)
		return nil
	}))
	require.Len(t, fields, 5)
	assert.Equal(t, int64(-42), fields[0].Int())
	assert.True(t, fields[1].Bool())
	assert.Equal(t, 2.5, fields[2].Double())
	assert.Equal(t, float32(-0.25), fields[3].Float())
	assert.Equal(t, protowire.BytesType, fields[4].Type)

	var inner int64
	require.NoError(t, Decode(fields[4].Bytes, func(f Field) error {
		inner = f.Int()
		return nil
	}))
	assert.Equal(t, int64(7), inner)
}

func TestDecodeErrors(t *testing.T) {
	e := NewEncoder()
	e.Double(1, 1)
	data := e.Bytes()
	assert.Error(t, Decode(data[:len(data)-1], func(Field) error { return nil }))

	group := protowire.AppendTag(nil, 1, protowire.StartGroupType)
	assert.ErrorIs(t, Decode(group, func(Field) error { return nil }), ErrWireType)

	assert.ErrorIs(t, Decode(e.Bytes(), func(Field) error { return assert.AnError }), assert.AnError)
}
