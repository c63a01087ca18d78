package protocol

import "fmt"

// OpCode identifies a render mutation on the wire.
type OpCode uint8

const (
	OpCreateElement OpCode = 0x01 // allocate an element node
	OpCreateText    OpCode = 0x02 // allocate a text node
	OpSetText       OpCode = 0x03 // replace a text node's content
	OpSetAttr       OpCode = 0x04 // set an attribute on an element
	OpRemoveAttr    OpCode = 0x05 // remove an attribute from an element
	OpInsert        OpCode = 0x06 // attach a node under a parent
	OpMove          OpCode = 0x07 // reposition a node within its parent
	OpRemove        OpCode = 0x08 // detach a node from its parent
)

// String returns the string representation of the op code.
func (c OpCode) String() string {
	switch c {
	case OpCreateElement:
		return "CreateElement"
	case OpCreateText:
		return "CreateText"
	case OpSetText:
		return "SetText"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpInsert:
		return "Insert"
	case OpMove:
		return "Move"
	case OpRemove:
		return "Remove"
	default:
		return fmt.Sprintf("OpCode(0x%02X)", uint8(c))
	}
}

// Op is one render mutation. Node identifiers are assigned by the sender
// starting at 1; the identifier 0 names the display root when used as a
// Parent and means "append" when used as a Ref.
//
// Field usage by code:
//
//	CreateElement: Node, Tag
//	CreateText:    Node, Value
//	SetText:       Node, Value
//	SetAttr:       Node, Name, Value
//	RemoveAttr:    Node, Name
//	Insert:        Node, Parent, Ref
//	Move:          Node, Parent, Ref
//	Remove:        Node, Parent
type Op struct {
	Code   OpCode
	Node   uint64
	Parent uint64
	Ref    uint64
	Tag    string
	Name   string
	Value  string
}

// String formats the op for logs.
func (o Op) String() string {
	switch o.Code {
	case OpCreateElement:
		return fmt.Sprintf("%s #%d <%s>", o.Code, o.Node, o.Tag)
	case OpCreateText, OpSetText:
		return fmt.Sprintf("%s #%d %q", o.Code, o.Node, o.Value)
	case OpSetAttr:
		return fmt.Sprintf("%s #%d %s=%q", o.Code, o.Node, o.Name, o.Value)
	case OpRemoveAttr:
		return fmt.Sprintf("%s #%d %s", o.Code, o.Node, o.Name)
	case OpInsert, OpMove:
		if o.Ref == 0 {
			return fmt.Sprintf("%s #%d into #%d", o.Code, o.Node, o.Parent)
		}
		return fmt.Sprintf("%s #%d into #%d before #%d", o.Code, o.Node, o.Parent, o.Ref)
	case OpRemove:
		return fmt.Sprintf("%s #%d from #%d", o.Code, o.Node, o.Parent)
	default:
		return o.Code.String()
	}
}

// EncodeTo appends the op's wire form to the encoder.
func (o Op) EncodeTo(e *Encoder) {
	e.WriteByte(byte(o.Code))
	e.WriteUvarint(o.Node)
	switch o.Code {
	case OpCreateElement:
		e.WriteString(o.Tag)
	case OpCreateText, OpSetText:
		e.WriteString(o.Value)
	case OpSetAttr:
		e.WriteString(o.Name)
		e.WriteString(o.Value)
	case OpRemoveAttr:
		e.WriteString(o.Name)
	case OpInsert, OpMove:
		e.WriteUvarint(o.Parent)
		e.WriteUvarint(o.Ref)
	case OpRemove:
		e.WriteUvarint(o.Parent)
	}
}

// DecodeOp reads one op from the decoder.
func DecodeOp(d *Decoder) (Op, error) {
	var o Op
	b, err := d.ReadByte()
	if err != nil {
		return o, err
	}
	o.Code = OpCode(b)
	if o.Node, err = d.ReadUvarint(); err != nil {
		return o, err
	}
	switch o.Code {
	case OpCreateElement:
		o.Tag, err = d.ReadString()
	case OpCreateText, OpSetText:
		o.Value, err = d.ReadString()
	case OpSetAttr:
		if o.Name, err = d.ReadString(); err != nil {
			return o, err
		}
		o.Value, err = d.ReadString()
	case OpRemoveAttr:
		o.Name, err = d.ReadString()
	case OpInsert, OpMove:
		if o.Parent, err = d.ReadUvarint(); err != nil {
			return o, err
		}
		o.Ref, err = d.ReadUvarint()
	case OpRemove:
		o.Parent, err = d.ReadUvarint()
	default:
		return o, fmt.Errorf("%w: 0x%02X", ErrUnknownOp, b)
	}
	return o, err
}
