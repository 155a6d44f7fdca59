package formspec

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// FormSpec describes the form of one payment method.
type FormSpec struct {
	// Type is the canonical payment-method identifier, for example "ideal".
	Type string
	// Async marks payment methods whose confirmation settles later.
	Async  bool
	Fields []FieldSpec
	// NextActionSpec is nil when the payment method needs no special
	// next-action handling.
	NextActionSpec *NextActionSpec
}

// DecodeFormSpec decodes one payment-method entry. Any malformed field or
// next-action entry fails the whole entry.
func DecodeFormSpec(node Node) (FormSpec, error) {
	pmType, err := node.optionalString("type")
	if err != nil {
		return FormSpec{}, err
	}
	pmType = strings.TrimSpace(pmType)
	if pmType == "" {
		return FormSpec{}, &DecodeError{Key: "type", Err: ErrMissingType}
	}

	async, err := node.optionalBool("async")
	if err != nil {
		return FormSpec{}, withTag(err, pmType)
	}

	rawFields, err := node.optionalList("fields")
	if err != nil {
		return FormSpec{}, withTag(err, pmType)
	}
	fields := make([]FieldSpec, 0, len(rawFields))
	for idx, raw := range rawFields {
		entry, ok := AsNode(raw)
		if !ok {
			return FormSpec{}, malformed(pmType, "fields", "entry %d: expected object, got %T", idx, raw)
		}
		field, err := DecodeField(entry)
		if err != nil {
			return FormSpec{}, fmt.Errorf("formspec: %s: field %d: %w", pmType, idx, err)
		}
		fields = append(fields, field)
	}

	spec := FormSpec{Type: pmType, Async: async, Fields: fields}

	nextAction, err := node.optionalObject("next_action_spec")
	if err != nil {
		return FormSpec{}, withTag(err, pmType)
	}
	if nextAction != nil {
		decoded, err := DecodeNextActionSpec(nextAction)
		if err != nil {
			return FormSpec{}, fmt.Errorf("formspec: %s: next_action_spec: %w", pmType, err)
		}
		spec.NextActionSpec = decoded
	}
	return spec, nil
}

// EncodeFormSpec returns the keyed representation of spec.
func EncodeFormSpec(spec FormSpec) Node {
	fields := make([]any, 0, len(spec.Fields))
	for _, field := range spec.Fields {
		fields = append(fields, map[string]any(EncodeField(field)))
	}
	node := Node{"type": spec.Type, "fields": fields}
	if spec.Async {
		node["async"] = true
	}
	if spec.NextActionSpec != nil {
		node["next_action_spec"] = map[string]any(EncodeNextActionSpec(spec.NextActionSpec))
	}
	return node
}

// MarshalJSON implements json.Marshaler.
func (s FormSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any(EncodeFormSpec(s)))
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *FormSpec) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("formspec: decode form spec: %w", err)
	}
	decoded, err := DecodeFormSpec(Node(raw))
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}
