package formspec

import (
	"fmt"
	"strings"
)

// Node is a generic keyed schema entry as produced by JSON or YAML decoding.
type Node map[string]any

// AsNode converts decoded document values into a Node. YAML decoders may
// produce map[any]any for nested mappings; keys are stringified.
func AsNode(value any) (Node, bool) {
	switch typed := value.(type) {
	case Node:
		return typed, true
	case map[string]any:
		return Node(typed), true
	case map[any]any:
		out := make(Node, len(typed))
		for k, v := range typed {
			out[fmt.Sprint(k)] = v
		}
		return out, true
	default:
		return nil, false
	}
}

// tag returns the discriminator unchanged. Blank tags count as missing.
func (n Node) tag() (string, error) {
	raw, ok := n["type"]
	if !ok {
		return "", &DecodeError{Key: "type", Err: ErrMissingType}
	}
	tag, ok := raw.(string)
	if !ok || strings.TrimSpace(tag) == "" {
		return "", &DecodeError{Key: "type", Err: ErrMissingType}
	}
	return tag, nil
}

func (n Node) has(key string) bool {
	v, ok := n[key]
	return ok && v != nil
}

func (n Node) optionalString(key string) (string, error) {
	raw, ok := n[key]
	if !ok || raw == nil {
		return "", nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", malformed("", key, "expected string, got %T", raw)
	}
	return value, nil
}

func (n Node) optionalBool(key string) (bool, error) {
	raw, ok := n[key]
	if !ok || raw == nil {
		return false, nil
	}
	value, ok := raw.(bool)
	if !ok {
		return false, malformed("", key, "expected boolean, got %T", raw)
	}
	return value, nil
}

func (n Node) optionalStrings(key string) ([]string, error) {
	raw, ok := n[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch typed := raw.(type) {
	case []string:
		return append([]string(nil), typed...), nil
	case []any:
		out := make([]string, 0, len(typed))
		for idx, entry := range typed {
			value, ok := entry.(string)
			if !ok {
				return nil, malformed("", key, "entry %d: expected string, got %T", idx, entry)
			}
			out = append(out, value)
		}
		return out, nil
	default:
		return nil, malformed("", key, "expected array of strings, got %T", raw)
	}
}

func (n Node) optionalObject(key string) (Node, error) {
	raw, ok := n[key]
	if !ok || raw == nil {
		return nil, nil
	}
	obj, ok := AsNode(raw)
	if !ok {
		return nil, malformed("", key, "expected object, got %T", raw)
	}
	return obj, nil
}

func (n Node) optionalList(key string) ([]any, error) {
	raw, ok := n[key]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, malformed("", key, "expected array, got %T", raw)
	}
	return list, nil
}

func (n Node) apiPath() (APIPath, error) {
	raw, ok := n["api_path"]
	if !ok || raw == nil {
		return nil, nil
	}
	if typed, ok := raw.(map[string]string); ok {
		return APIPath(typed).clone(), nil
	}
	obj, ok := AsNode(raw)
	if !ok {
		return nil, malformed("", "api_path", "expected object, got %T", raw)
	}
	out := make(APIPath, len(obj))
	for key, value := range obj {
		path, ok := value.(string)
		if !ok {
			return nil, malformed("", "api_path", "entry %q: expected string, got %T", key, value)
		}
		out[key] = path
	}
	return out, nil
}
