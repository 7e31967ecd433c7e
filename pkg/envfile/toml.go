package envfile

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/fonda/pkg/errors"
)

// parseTOML decodes data and orders the top-level keys by their position
// in the file, as reported by the decoder's metadata.
func parseTOML(data []byte) (*Document, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEnvironment, err, "parse TOML")
	}

	doc := &Document{Format: TOML}
	seen := make(map[string]bool)
	for _, k := range md.Keys() {
		if len(k) == 0 || seen[k[0]] {
			continue
		}
		key := k[0]
		seen[key] = true

		f := Field{Key: key}
		switch v := raw[key].(type) {
		case []any:
			f.IsList = true
			items, err := tomlItems(key, v, "")
			if err != nil {
				return nil, err
			}
			f.Items = items
		case []map[string]any:
			// Arrays of tables ([[dependencies]]).
			f.IsList = true
			generic := make([]any, len(v))
			for i := range v {
				generic[i] = v[i]
			}
			items, err := tomlItems(key, generic, "")
			if err != nil {
				return nil, err
			}
			f.Items = items
		case string:
			f.Scalar = v
		case float64:
			f.Scalar = strconv.FormatFloat(v, 'f', -1, 64)
		case nil:
		default:
			f.Scalar = fmt.Sprint(v)
		}
		doc.Fields = append(doc.Fields, f)
	}
	return doc, nil
}

func tomlItems(key string, list []any, nested string) ([]Item, error) {
	var items []Item
	for i, v := range list {
		switch v := v.(type) {
		case string:
			items = append(items, Item{Text: v, Nested: nested})
		case map[string]any:
			if nested != "" {
				return nil, errors.New(errors.ErrCodeInvalidEnvironment,
					"%s[%d]: nested lists may only be one level deep", key, i)
			}
			for sub, sv := range v {
				list, ok := sv.([]any)
				if !ok {
					return nil, errors.New(errors.ErrCodeInvalidEnvironment,
						"%s[%d].%s must be a list", key, i, sub)
				}
				subItems, err := tomlItems(key, list, sub)
				if err != nil {
					return nil, err
				}
				items = append(items, subItems...)
			}
		default:
			return nil, errors.New(errors.ErrCodeInvalidEnvironment,
				"%s[%d]: unsupported entry of type %T", key, i, v)
		}
	}
	return items, nil
}
