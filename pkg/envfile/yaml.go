package envfile

import (
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/matzehuels/fonda/pkg/errors"
)

// parseYAML walks the node tree so key order and line comments survive.
func parseYAML(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEnvironment, err, "parse YAML")
	}
	doc := &Document{Format: YAML}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return doc, nil
	}

	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrCodeInvalidEnvironment, "line %d: document must be a mapping", m.Line)
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i], m.Content[i+1]
		f := Field{Key: key.Value}
		switch val.Kind {
		case yaml.SequenceNode:
			f.IsList = true
			items, err := yamlItems(val, "")
			if err != nil {
				return nil, err
			}
			f.Items = items
		case yaml.ScalarNode:
			f.Scalar = val.Value
		}
		doc.Fields = append(doc.Fields, f)
	}
	return doc, nil
}

// yamlItems flattens a sequence. Scalars become items with their line
// comment re-attached; single-key mappings of lists ("- pip: [...]")
// contribute their entries tagged with the key.
func yamlItems(seq *yaml.Node, nested string) ([]Item, error) {
	var items []Item
	for _, n := range seq.Content {
		switch n.Kind {
		case yaml.ScalarNode:
			items = append(items, Item{Text: withComment(n), Nested: nested})
		case yaml.MappingNode:
			if nested != "" {
				return nil, errors.New(errors.ErrCodeInvalidEnvironment,
					"line %d: nested lists may only be one level deep", n.Line)
			}
			for i := 0; i+1 < len(n.Content); i += 2 {
				key, val := n.Content[i], n.Content[i+1]
				if val.Kind != yaml.SequenceNode {
					return nil, errors.New(errors.ErrCodeInvalidEnvironment,
						"line %d: %q must be a list", key.Line, key.Value)
				}
				sub, err := yamlItems(val, key.Value)
				if err != nil {
					return nil, err
				}
				items = append(items, sub...)
			}
		default:
			return nil, errors.New(errors.ErrCodeInvalidEnvironment,
				"line %d: unsupported list entry", n.Line)
		}
	}
	return items, nil
}

// withComment returns the scalar text followed by its trailing comment, so
// "pywin32  # [win]" reaches the classifier intact.
func withComment(n *yaml.Node) string {
	comment := strings.TrimSpace(n.LineComment)
	if comment == "" {
		return n.Value
	}
	return n.Value + "  " + comment
}
