package jsonschema

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// MarshalYAML implements yaml.Marshaler using DialectClassic.
func (doc *Document) MarshalYAML() (any, error) {
	n, err := yamlObject(doc.members(DialectClassic), DialectClassic)
	if err != nil {
		return nil, &EncodeError{Format: "yaml", Err: err}
	}
	return n, nil
}

// MarshalYAMLDialect encodes doc as a YAML document indented by indent spaces.
func MarshalYAMLDialect(doc *Document, d Dialect, indent int) ([]byte, error) {
	n, err := yamlObject(doc.members(d), d)
	if err != nil {
		return nil, &EncodeError{Format: "yaml", Err: err}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if indent > 0 {
		enc.SetIndent(indent)
	}
	if err := enc.Encode(n); err != nil {
		return nil, &EncodeError{Format: "yaml", Err: err}
	}
	if err := enc.Close(); err != nil {
		return nil, &EncodeError{Format: "yaml", Err: err}
	}
	return buf.Bytes(), nil
}

func yamlObject(ms []member, d Dialect) (*yaml.Node, error) {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, m := range ms {
		k, err := yamlString(m.Key)
		if err != nil {
			return nil, err
		}
		v, err := yamlValue(m.Value, d)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.Key, err)
		}
		out.Content = append(out.Content, k, v)
	}
	return out, nil
}

func yamlValue(v any, d Dialect) (*yaml.Node, error) {
	switch t := v.(type) {
	case string:
		return yamlString(t)
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(t)}, nil
	case uint64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(t, 10)}, nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, fmt.Errorf("unsupported number %v", t)
		}
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatFloat(t, 'f', -1, 64)}, nil
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(t, 'g', -1, 64)}, nil
	case []string:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, s := range t {
			n, err := yamlString(s)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	case Node:
		if t == nil {
			return nil, errNilNode
		}
		return yamlObject(t.members(d), d)
	case []Node:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, n := range t {
			if n == nil {
				return nil, errNilNode
			}
			c, err := yamlObject(n.members(d), d)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, c)
		}
		return seq, nil
	case []member:
		return yamlObject(t, d)
	case nil:
		return nil, errNilNode
	}
	return nil, fmt.Errorf("unsupported value %T", v)
}

func yamlString(s string) (*yaml.Node, error) {
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("invalid UTF-8 in %q", s)
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}, nil
}
