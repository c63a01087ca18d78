// Package treedef loads virtual trees from YAML documents.
//
// The format exists for tooling: the CLI renders and diffs static trees
// described in files, without writing components. A document is one node;
// a node is a text node, an element, or a list.
//
//	key: "row-1"          # optional; integer scalars become integer keys
//	tag: div
//	attrs:
//	  class: box          # attribute order is preserved
//	children:
//	  - text: hello
//
// A node with neither text nor tag but with children is a bare list.
package treedef

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pepsighan/ruukh-ui/pkg/vdom"
)

// ErrInvalidNode marks a structurally invalid node definition.
var ErrInvalidNode = errors.New("treedef: invalid node")

// Node is the YAML form of a virtual node.
type Node struct {
	Key      *yaml.Node `yaml:"key"`
	Text     *string    `yaml:"text"`
	Tag      string     `yaml:"tag"`
	Attrs    yaml.Node  `yaml:"attrs"`
	Children []Node     `yaml:"children"`
}

// Load reads a single-document tree definition.
func Load(r io.Reader) (*vdom.KeyedNode, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var n Node
	if err := dec.Decode(&n); err != nil {
		return nil, fmt.Errorf("treedef: decode: %w", err)
	}
	return n.Build()
}

// LoadFile reads a tree definition from path.
func LoadFile(path string) (*vdom.KeyedNode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tree, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

// Build converts the definition into an engine tree.
func (n *Node) Build() (*vdom.KeyedNode, error) {
	inner, err := n.build()
	if err != nil {
		return nil, err
	}
	if n.Key == nil {
		return vdom.Unkeyed(inner), nil
	}
	key, err := decodeKey(n.Key)
	if err != nil {
		return nil, err
	}
	return vdom.Keyed(key, inner), nil
}

func (n *Node) build() (*vdom.VNode, error) {
	switch {
	case n.Text != nil:
		if n.Tag != "" || len(n.Children) > 0 {
			return nil, fmt.Errorf("%w: text node with tag or children", ErrInvalidNode)
		}
		return vdom.TextNode(*n.Text), nil

	case n.Tag != "":
		attrs, err := decodeAttrs(&n.Attrs)
		if err != nil {
			return nil, err
		}
		child, err := buildItems(n.Children)
		if err != nil {
			return nil, err
		}
		return vdom.Element(n.Tag, attrs, child), nil

	case len(n.Children) > 0:
		child, err := buildItems(n.Children)
		if err != nil {
			return nil, err
		}
		return child.Node, nil

	default:
		return nil, fmt.Errorf("%w: need text, tag or children", ErrInvalidNode)
	}
}

// buildItems wraps element or list children. A single child stays bare; two
// or more become a list.
func buildItems(defs []Node) (*vdom.KeyedNode, error) {
	if len(defs) == 0 {
		return nil, nil
	}
	if len(defs) == 1 && defs[0].Key == nil {
		return defs[0].Build()
	}
	items := make([]*vdom.KeyedNode, 0, len(defs))
	for i := range defs {
		item, err := defs[i].Build()
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		items = append(items, item)
	}
	return vdom.Unkeyed(vdom.List(items...)), nil
}

// decodeKey maps YAML scalar types onto key variants: integers become
// integer keys, everything else becomes a string key.
func decodeKey(y *yaml.Node) (vdom.Key, error) {
	if y.Kind != yaml.ScalarNode {
		return vdom.Key{}, fmt.Errorf("%w: key must be a scalar", ErrInvalidNode)
	}
	if y.Tag == "!!int" {
		var i int64
		if err := y.Decode(&i); err != nil {
			return vdom.Key{}, fmt.Errorf("%w: key: %v", ErrInvalidNode, err)
		}
		return vdom.IntKey(i), nil
	}
	var s string
	if err := y.Decode(&s); err != nil {
		return vdom.Key{}, fmt.Errorf("%w: key: %v", ErrInvalidNode, err)
	}
	return vdom.StringKey(s), nil
}

// decodeAttrs walks the mapping node directly so attribute order survives.
func decodeAttrs(y *yaml.Node) ([]vdom.Attr, error) {
	if y.Kind == 0 || y.Tag == "!!null" {
		return nil, nil
	}
	if y.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: attrs must be a mapping", ErrInvalidNode)
	}
	attrs := make([]vdom.Attr, 0, len(y.Content)/2)
	for i := 0; i+1 < len(y.Content); i += 2 {
		var name, value string
		if err := y.Content[i].Decode(&name); err != nil {
			return nil, fmt.Errorf("%w: attr name: %v", ErrInvalidNode, err)
		}
		if err := y.Content[i+1].Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: attr %s: %v", ErrInvalidNode, name, err)
		}
		attrs = append(attrs, vdom.Attr{Name: name, Value: value})
	}
	return attrs, nil
}
