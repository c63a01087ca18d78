package protocol

import "fmt"

// Batch carries the ops of one render pass.
//
// Wire format:
//
//	uvarint  sequence number
//	uvarint  op count
//	op*      encoded ops
//
// Sequence numbers start at 1 and increase by one per flushed pass. A
// receiver seeing a gap has lost state and must request a remount.
type Batch struct {
	Seq uint64
	Ops []Op
}

// Encode appends the batch's wire form to the encoder.
func (b *Batch) Encode(e *Encoder) {
	e.WriteUvarint(b.Seq)
	e.WriteUvarint(uint64(len(b.Ops)))
	for _, op := range b.Ops {
		op.EncodeTo(e)
	}
}

// Marshal encodes the batch into a fresh byte slice.
func (b *Batch) Marshal() []byte {
	e := NewEncoder()
	b.Encode(e)
	return e.Bytes()
}

// DecodeBatch decodes one batch from buf and rejects trailing bytes.
func DecodeBatch(buf []byte) (*Batch, error) {
	d := NewDecoder(buf)
	b, err := decodeBatch(d)
	if err != nil {
		return nil, err
	}
	if !d.EOF() {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailingBytes, d.Remaining())
	}
	return b, nil
}

func decodeBatch(d *Decoder) (*Batch, error) {
	b := &Batch{}
	var err error
	if b.Seq, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	count, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if count > MaxBatchOps {
		return nil, ErrBatchTooLarge
	}
	// Each op is at least two bytes; a count that cannot fit in the
	// remaining buffer is malformed regardless of the limit above.
	if count > uint64(d.Remaining()) {
		return nil, ErrBatchTooLarge
	}
	b.Ops = make([]Op, 0, count)
	for i := uint64(0); i < count; i++ {
		op, err := DecodeOp(d)
		if err != nil {
			return nil, err
		}
		b.Ops = append(b.Ops, op)
	}
	return b, nil
}
