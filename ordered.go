package pitchprofile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Entry is one key/value pair of an OrderedMap.
type Entry struct {
	Key   string
	Value string
}

// OrderedMap is a string to string mapping that keeps document order, so
// roadmap periods and fund categories serialize the way they were written.
type OrderedMap []Entry

// Get returns the value stored under key.
func (m OrderedMap) Get(key string) (string, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

func (m OrderedMap) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

func (m *OrderedMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*m = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return &yaml.TypeError{Errors: []string{
			fmt.Sprintf("line %d: cannot unmarshal %s into a mapping", node.Line, kindName(node.Kind)),
		}}
	}

	var problems []string
	seen := make(map[string]bool, len(node.Content)/2)
	out := make(OrderedMap, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			problems = append(problems, fmt.Sprintf("line %d: mapping key must be a scalar", k.Line))
			continue
		}
		if v.Kind != yaml.ScalarNode {
			problems = append(problems, fmt.Sprintf("line %d: value for %q must be a scalar, got %s", k.Line, k.Value, kindName(v.Kind)))
			continue
		}
		if seen[k.Value] {
			problems = append(problems, fmt.Sprintf("line %d: duplicate key %q", k.Line, k.Value))
			continue
		}
		seen[k.Value] = true
		out = append(out, Entry{Key: k.Value, Value: v.Value})
	}
	if len(problems) > 0 {
		return &yaml.TypeError{Errors: problems}
	}
	if len(out) == 0 {
		// {} and an absent key decode alike
		out = nil
	}
	*m = out
	return nil
}

func (m OrderedMap) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range m {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Value},
		)
	}
	return node, nil
}

// MarshalJSON encodes the map as a JSON object in document order.
func (m OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping key order.
func (m *OrderedMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	var out OrderedMap
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected string key, got %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("value for %q: %w", key, err)
		}
		out = append(out, Entry{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}
