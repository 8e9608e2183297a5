package main

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/pozitronik/fpdb"
)

// decodeArgs parses a YAML or JSON document holding a list of template
// arguments. Mapping order is preserved. Strings equal to skipMarker become
// the skip sentinel; an empty skipMarker disables this.
func decodeArgs(src []byte, skipMarker string) ([]fpdb.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse arguments: %w", err)
	}

	// Empty document
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("arguments must be a list, got %s at line %d", nodeKind(root), root.Line)
	}

	dec := argDecoder{skipMarker: skipMarker}
	out := make([]fpdb.Value, len(root.Content))
	for ind, node := range root.Content {
		val, err := dec.decode(node)
		if err != nil {
			return nil, fmt.Errorf("argument #%d: %w", ind+1, err)
		}
		out[ind] = val
	}
	return out, nil
}

type argDecoder struct {
	skipMarker string
}

func (d argDecoder) decode(node *yaml.Node) (fpdb.Value, error) {
	switch node.Kind {
	case yaml.AliasNode:
		if node.Alias == nil {
			return fpdb.Value{}, errors.New("unresolved alias")
		}
		return d.decode(node.Alias)

	case yaml.SequenceNode:
		vals := make([]fpdb.Value, len(node.Content))
		for ind, elem := range node.Content {
			val, err := d.decode(elem)
			if err != nil {
				return fpdb.Value{}, err
			}
			vals[ind] = val
		}
		return fpdb.Seq(vals...), nil

	case yaml.MappingNode:
		pairs := make([]fpdb.KeyVal, 0, len(node.Content)/2)
		for ind := 0; ind+1 < len(node.Content); ind += 2 {
			key, valNode := node.Content[ind], node.Content[ind+1]
			if key.Kind != yaml.ScalarNode {
				return fpdb.Value{}, fmt.Errorf("mapping key at line %d must be a scalar, got %s", key.Line, nodeKind(key))
			}
			val, err := d.decode(valNode)
			if err != nil {
				return fpdb.Value{}, err
			}
			pairs = append(pairs, fpdb.Pair(key.Value, val))
		}
		return fpdb.Map(pairs...), nil

	case yaml.ScalarNode:
		return d.scalar(node)

	default:
		return fpdb.Value{}, fmt.Errorf("unsupported node %s at line %d", nodeKind(node), node.Line)
	}
}

func (d argDecoder) scalar(node *yaml.Node) (fpdb.Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return fpdb.Null(), nil

	case "!!bool":
		var val bool
		if err := node.Decode(&val); err != nil {
			return fpdb.Value{}, err
		}
		return fpdb.Bool(val), nil

	case "!!int":
		var val int64
		if err := node.Decode(&val); err != nil {
			// Out of int64 range: keep the digits, they still render unquoted.
			return fpdb.Str(node.Value), nil
		}
		return fpdb.Int(val), nil

	case "!!float":
		var val float64
		if err := node.Decode(&val); err != nil {
			return fpdb.Value{}, err
		}
		return fpdb.Float(val), nil

	default:
		if d.skipMarker != "" && node.Value == d.skipMarker {
			return fpdb.Skip(), nil
		}
		return fpdb.Str(node.Value), nil
	}
}

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
