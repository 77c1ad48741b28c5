package record

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaSpec describes the expected output shape for one document type.
// ScalarFields maps field name -> true when the value may be numeric
// (derived amounts, confidence average); false means string-only.
type SchemaSpec struct {
	ScalarFields map[string]bool
	// DerivedFields are numeric outputs of reconciliation and quarter
	// assignment; present only when the source data allows computing them.
	DerivedFields []string
	Tables        map[string][]string // table key -> column names
}

// BuildSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map
// for the flattened record shape. Used as a programmer-error guard before
// persistence: data-level problems surface as [INVALID] values, never here.
func BuildSchema(spec SchemaSpec) map[string]any {
	props := make(map[string]any, len(spec.ScalarFields)+len(spec.Tables))
	required := make([]string, 0, len(spec.ScalarFields))

	for name, numeric := range spec.ScalarFields {
		if numeric {
			props[name] = map[string]any{"type": []string{"string", "number"}}
		} else {
			props[name] = map[string]any{"type": "string"}
		}
		required = append(required, name)
	}

	for _, name := range spec.DerivedFields {
		props[name] = map[string]any{"type": []string{"string", "number"}}
	}

	for key, columns := range spec.Tables {
		colProps := make(map[string]any, len(columns))
		for _, c := range columns {
			colProps[c] = map[string]any{"type": "string"}
		}
		props[key] = map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           colProps,
			},
		}
	}

	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// Validate checks data against schemaMap.
func Validate(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("record.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}
