// Package yamlwire bridges Value trees to YAML using yaml.v3 Node trees,
// which preserve mapping order in both directions.
package yamlwire

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	codable "github.com/codablekit/codable"
)

// Marshal serializes a Value tree to YAML bytes, preserving member order.
func Marshal(v codable.Value) ([]byte, error) {
	node := toNode(v)
	out, err := yaml.Marshal(node)
	if err != nil {
		return nil, codable.Issues{{Path: "/", Code: codable.CodeParseError, Message: "yaml marshal failed", Cause: err, Offset: -1}}
	}
	return out, nil
}

// Unmarshal parses YAML bytes into a Value tree, preserving member order.
func Unmarshal(data []byte) (codable.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return codable.Value{}, codable.Issues{{Path: "/", Code: codable.CodeParseError, Message: "yaml unmarshal failed", Cause: err, Offset: -1}}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return codable.Null(), nil
	}
	return fromNode(doc.Content[0], "/")
}

// Encode runs v's contract and serializes the result to YAML.
func Encode(v codable.Encodable, opts ...codable.EncodeOptions) ([]byte, error) {
	val, err := codable.Encode(v, opts...)
	if err != nil {
		return nil, err
	}
	return Marshal(val)
}

// Decode parses YAML bytes and drives out's contract over the tree.
func Decode(data []byte, out codable.Decodable, opts ...codable.DecodeOptions) error {
	v, err := Unmarshal(data)
	if err != nil {
		return err
	}
	return codable.Decode(v, out, opts...)
}

func toNode(v codable.Value) *yaml.Node {
	switch v.Kind() {
	case codable.KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case codable.KindBool:
		b, _ := v.AsBool()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
	case codable.KindNumber:
		n, _ := v.AsNumber()
		tag := "!!float"
		if _, err := n.Int64(); err == nil {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(n)}
	case codable.KindString:
		s, _ := v.AsString()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	case codable.KindArray:
		elems, _ := v.AsArray()
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range elems {
			node.Content = append(node.Content, toNode(e))
		}
		return node
	default: // object
		members, _ := v.AsObject()
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range members {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Name},
				toNode(m.Value),
			)
		}
		return node
	}
}

func fromNode(n *yaml.Node, path string) (codable.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return codable.Null(), nil
		}
		return fromNode(n.Content[0], path)
	case yaml.AliasNode:
		return fromNode(n.Alias, path)
	case yaml.ScalarNode:
		return fromScalar(n, path)
	case yaml.SequenceNode:
		arr := make([]codable.Value, len(n.Content))
		for i, c := range n.Content {
			v, err := fromNode(c, path+"/"+strconv.Itoa(i))
			if err != nil {
				return codable.Value{}, err
			}
			arr[i] = v
		}
		return codable.Array(arr...), nil
	case yaml.MappingNode:
		members := make([]codable.Member, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			v, err := fromNode(n.Content[i+1], path+"/"+key)
			if err != nil {
				return codable.Value{}, err
			}
			members = append(members, codable.Member{Name: key, Value: v})
		}
		return codable.Object(members...), nil
	default:
		return codable.Value{}, codable.Issues{{Path: path, Code: codable.CodeParseError, Message: fmt.Sprintf("unsupported yaml node kind %d", n.Kind), Offset: -1}}
	}
}

func fromScalar(n *yaml.Node, path string) (codable.Value, error) {
	switch n.Tag {
	case "!!null":
		return codable.Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return codable.Value{}, codable.Issues{{Path: path, Code: codable.CodeParseError, Message: "invalid yaml bool", Cause: err, Offset: -1}}
		}
		return codable.Bool(b), nil
	case "!!int", "!!float":
		return codable.Number(json.Number(n.Value)), nil
	default:
		return codable.String(n.Value), nil
	}
}
