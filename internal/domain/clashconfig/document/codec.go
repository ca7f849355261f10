package document

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// maxDepth bounds alias expansion so a self-referencing anchor cannot recurse forever.
	maxDepth = 256

	// Expanded documents may hold at most aliasRatio times the nodes written
	// in the source, and never less than minExpandedNodes.
	aliasRatio       = 10
	minExpandedNodes = 100000
)

var (
	ErrNotMapping     = errors.New("document root is not a mapping")
	ErrComplexKey     = errors.New("mapping keys must be scalars")
	ErrTooDeep        = errors.New("document nesting too deep")
	ErrUnknownShape   = errors.New("unsupported yaml node")
	ErrTooManyAliases = errors.New("document expands too many aliases")
)

// Parse reads a YAML document into a Mapping. Empty or comment-only text is
// an empty mapping; any other non-mapping root is rejected. Anchors and
// aliases are expanded into independent copies.
func Parse(text string) (*Mapping, error) {
	if strings.TrimSpace(text) == "" {
		return NewMapping(), nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	node := &root
	if node.Kind == 0 {
		return NewMapping(), nil
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return NewMapping(), nil
		}
		node = node.Content[0]
	}

	d := &decoder{budget: max(aliasRatio*countNodes(node), minExpandedNodes)}
	v, err := d.fromNode(node, 0)
	if err != nil {
		return nil, err
	}
	if s, ok := v.(*Scalar); ok && s.IsNull() {
		return NewMapping(), nil
	}
	m, ok := v.(*Mapping)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotMapping, v.Kind())
	}
	return m, nil
}

// countNodes counts the nodes as written, without following aliases.
func countNodes(n *yaml.Node) int {
	total := 1
	for _, child := range n.Content {
		total += countNodes(child)
	}
	return total
}

// decoder converts yaml nodes into values, charging every produced node
// against budget.
type decoder struct {
	budget int
	used   int
}

func (d *decoder) fromNode(n *yaml.Node, depth int) (Value, error) {
	if depth > maxDepth {
		return nil, ErrTooDeep
	}
	d.used++
	if d.used > d.budget {
		return nil, fmt.Errorf("%w: more than %d nodes", ErrTooManyAliases, d.budget)
	}

	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("%w: dangling alias %q", ErrUnknownShape, n.Value)
		}
		return d.fromNode(n.Alias, depth+1)

	case yaml.ScalarNode:
		return &Scalar{Tag: n.ShortTag(), Text: n.Value, Style: styleOf(n.Style)}, nil

	case yaml.SequenceNode:
		seq := &Sequence{Items: make([]Value, 0, len(n.Content)), Flow: n.Style&yaml.FlowStyle != 0}
		for _, child := range n.Content {
			item, err := d.fromNode(child, depth+1)
			if err != nil {
				return nil, err
			}
			seq.Items = append(seq.Items, item)
		}
		return seq, nil

	case yaml.MappingNode:
		m := NewMapping()
		m.Flow = n.Style&yaml.FlowStyle != 0
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			for keyNode.Kind == yaml.AliasNode && keyNode.Alias != nil {
				keyNode = keyNode.Alias
			}
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w (line %d)", ErrComplexKey, keyNode.Line)
			}
			val, err := d.fromNode(n.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			// a repeated key keeps its first position and takes the last value
			m.SetEntry(&Scalar{Tag: keyNode.ShortTag(), Text: keyNode.Value, Style: styleOf(keyNode.Style)}, val)
		}
		return m, nil

	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return d.fromNode(n.Content[0], depth+1)

	default:
		return nil, fmt.Errorf("%w: kind %d", ErrUnknownShape, n.Kind)
	}
}

func styleOf(s yaml.Style) Style {
	switch {
	case s&yaml.DoubleQuotedStyle != 0:
		return StyleDoubleQuoted
	case s&yaml.SingleQuotedStyle != 0:
		return StyleSingleQuoted
	case s&yaml.LiteralStyle != 0:
		return StyleLiteral
	case s&yaml.FoldedStyle != 0:
		return StyleFolded
	default:
		return StylePlain
	}
}

func (s Style) yamlStyle() yaml.Style {
	switch s {
	case StyleDoubleQuoted:
		return yaml.DoubleQuotedStyle
	case StyleSingleQuoted:
		return yaml.SingleQuotedStyle
	case StyleLiteral:
		return yaml.LiteralStyle
	case StyleFolded:
		return yaml.FoldedStyle
	default:
		return 0
	}
}

// Encode serializes m as block-style YAML with two-space indentation.
// Scalars whose text would resolve to a different type are quoted by the
// encoder, so a string "123" stays a string.
func Encode(m *Mapping) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toNode(m)); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	return buf.String(), nil
}

func toNode(v Value) *yaml.Node {
	switch tv := v.(type) {
	case *Scalar:
		return scalarNode(tv)
	case *Sequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: make([]*yaml.Node, 0, len(tv.Items))}
		if tv.Flow {
			n.Style = yaml.FlowStyle
		}
		for _, item := range tv.Items {
			n.Content = append(n.Content, toNode(item))
		}
		return n
	case *Mapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: make([]*yaml.Node, 0, 2*len(tv.entries))}
		if tv.Flow {
			n.Style = yaml.FlowStyle
		}
		for _, e := range tv.entries {
			n.Content = append(n.Content, scalarNode(e.Key), toNode(e.Value))
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: TagNull, Value: "null"}
	}
}

func scalarNode(s *Scalar) *yaml.Node {
	tag := s.Tag
	if tag == "" {
		tag = TagString
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: s.Text, Style: s.Style.yamlStyle()}
}
