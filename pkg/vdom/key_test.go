package vdom

import "testing"

func TestKeyOfVariantBySourceType(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want KeyKind
	}{
		{"int", KeyOf(42), KeyInt},
		{"int8", KeyOf(int8(1)), KeyInt},
		{"int64", KeyOf(int64(-7)), KeyInt},
		{"uint", KeyOf(uint(42)), KeyUint},
		{"uint8", KeyOf(uint8(1)), KeyUint},
		{"uint64", KeyOf(uint64(7)), KeyUint},
		{"string", KeyOf("a"), KeyString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyEqualityIsVariantExact(t *testing.T) {
	if KeyOf(1) != KeyOf(1) {
		t.Error("equal int keys should compare equal")
	}
	if KeyOf(1) == KeyOf(uint(1)) {
		t.Error("int and uint keys must not compare equal, even for the same literal")
	}
	if KeyOf("1") == KeyOf(1) {
		t.Error("string and int keys must not compare equal")
	}
	if KeyOf("a") != StringKey("a") {
		t.Error("KeyOf(string) should equal StringKey of the same value")
	}
}

func TestKeyAsMapKey(t *testing.T) {
	m := map[Key]int{
		KeyOf(1):   1,
		KeyOf("1"): 2,
	}
	if m[IntKey(1)] != 1 {
		t.Errorf("IntKey lookup = %d, want 1", m[IntKey(1)])
	}
	if m[StringKey("1")] != 2 {
		t.Errorf("StringKey lookup = %d, want 2", m[StringKey("1")])
	}
	if _, ok := m[UintKey(1)]; ok {
		t.Error("UintKey(1) must not collide with IntKey(1)")
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{IntKey(-3), "-3"},
		{UintKey(3), "3u"},
		{StringKey("a"), `"a"`},
	}

	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
