package vdom

import "testing"

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindText, "Text"},
		{KindElement, "Element"},
		{KindList, "List"},
		{KindComponent, "Component"},
		{VKind(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("VKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKeyedNodeKey(t *testing.T) {
	k := Keyed(KeyOf("a"), TextNode("x"))
	key, ok := k.Key()
	if !ok {
		t.Fatal("Keyed node should report a key")
	}
	if key != StringKey("a") {
		t.Errorf("Key() = %v, want %v", key, StringKey("a"))
	}

	u := Unkeyed(TextNode("x"))
	if _, ok := u.Key(); ok {
		t.Error("Unkeyed node should not report a key")
	}
}

func TestSameSlot(t *testing.T) {
	tests := []struct {
		name     string
		new, old *KeyedNode
		want     bool
	}{
		{"both unkeyed", Unkeyed(TextNode("a")), Unkeyed(TextNode("b")), true},
		{"equal keys", Keyed(KeyOf(1), TextNode("a")), Keyed(KeyOf(1), TextNode("b")), true},
		{"different keys", Keyed(KeyOf(1), TextNode("a")), Keyed(KeyOf(2), TextNode("a")), false},
		{"different variants", Keyed(KeyOf(1), TextNode("a")), Keyed(KeyOf(uint(1)), TextNode("a")), false},
		{"keyed vs unkeyed", Keyed(KeyOf(1), TextNode("a")), Unkeyed(TextNode("a")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.new.sameSlot(tt.old); got != tt.want {
				t.Errorf("sameSlot() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDebugString(t *testing.T) {
	tree := Element("div", []Attr{{Name: "class", Value: "box"}}, Unkeyed(List(
		Keyed(KeyOf(1), TextNode("Hello ")),
		Keyed(KeyOf(2), Element("b", nil, Unkeyed(TextNode("World")))),
	)))

	want := `<div class="box">Hello <b>World</b></div>`
	if got := tree.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRefNilBeforeMount(t *testing.T) {
	tree := Element("div", nil, Unkeyed(TextNode("x")))
	if tree.Ref() != nil {
		t.Error("Ref() should be nil before mount")
	}
}
