package vdom

import "fmt"

// KeyKind is the key variant discriminator.
type KeyKind uint8

const (
	KeyInt    KeyKind = iota // signed integer key
	KeyUint                  // unsigned integer key
	KeyString                // string key
)

// String returns the string representation of the KeyKind.
func (k KeyKind) String() string {
	switch k {
	case KeyInt:
		return "Int"
	case KeyUint:
		return "Uint"
	case KeyString:
		return "String"
	default:
		return "Unknown"
	}
}

// Key identifies a node in a list across renders. Keys are equal only within
// the same variant: IntKey(1) != UintKey(1). They carry identity, never
// ordering. The zero Key is IntKey(0).
//
// Key is a comparable value type so it can index the keyed-diff lookup map
// directly.
type Key struct {
	kind KeyKind
	i    int64
	u    uint64
	s    string
}

// IntKey builds a key from a signed integer.
func IntKey(v int64) Key {
	return Key{kind: KeyInt, i: v}
}

// UintKey builds a key from an unsigned integer.
func UintKey(v uint64) Key {
	return Key{kind: KeyUint, u: v}
}

// StringKey builds a key from a string.
func StringKey(v string) Key {
	return Key{kind: KeyString, s: v}
}

// Keyable are the source types a Key can be built from.
type Keyable interface {
	int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		string
}

// KeyOf builds a Key from any supported source type. The variant is chosen
// by the source type, not the value, so the same literal always lands in the
// same variant: signed integers normalize to IntKey, unsigned to UintKey.
func KeyOf[T Keyable](v T) Key {
	switch x := any(v).(type) {
	case int:
		return IntKey(int64(x))
	case int8:
		return IntKey(int64(x))
	case int16:
		return IntKey(int64(x))
	case int32:
		return IntKey(int64(x))
	case int64:
		return IntKey(x)
	case uint:
		return UintKey(uint64(x))
	case uint8:
		return UintKey(uint64(x))
	case uint16:
		return UintKey(uint64(x))
	case uint32:
		return UintKey(uint64(x))
	case uint64:
		return UintKey(x)
	default:
		return StringKey(any(v).(string))
	}
}

// Kind returns the key's variant.
func (k Key) Kind() KeyKind { return k.kind }

// String returns a debug representation of the key.
func (k Key) String() string {
	switch k.kind {
	case KeyInt:
		return fmt.Sprintf("%d", k.i)
	case KeyUint:
		return fmt.Sprintf("%du", k.u)
	default:
		return fmt.Sprintf("%q", k.s)
	}
}
