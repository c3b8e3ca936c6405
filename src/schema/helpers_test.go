package schema

import (
	"testing"

	jsonschema "github.com/swaggest/jsonschema-go"
)

func TestCreateStringSchema(t *testing.T) {
	schema := CreateStringSchema("test description")

	if schema == nil {
		t.Fatal("Expected schema to be non-nil")
	}

	if schema.Description == nil || *schema.Description != "test description" {
		t.Errorf("Expected description 'test description', got %v", schema.Description)
	}

	if TypeName(schema) != "string" {
		t.Errorf("Expected type 'string', got %v", TypeName(schema))
	}
}

func TestCreateObjectSchema(t *testing.T) {
	properties := map[string]*jsonschema.Schema{
		"a": CreateNumberSchema("first operand"),
		"b": CreateNumberSchema("second operand"),
	}
	schema := CreateObjectSchema(properties, []string{"a"})

	if TypeName(schema) != "object" {
		t.Errorf("Expected type 'object', got %v", TypeName(schema))
	}

	if len(schema.Properties) != 2 {
		t.Errorf("Expected 2 properties, got %d", len(schema.Properties))
	}

	if len(schema.Required) != 1 || schema.Required[0] != "a" {
		t.Errorf("Expected required field 'a', got %v", schema.Required)
	}
}

func TestFromValue(t *testing.T) {
	wire := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"n": map[string]any{"type": "integer", "description": "number to factor"},
		},
		"required": []any{"n"},
	}

	schema, err := FromValue(wire)
	if err != nil {
		t.Fatalf("FromValue() error = %v", err)
	}
	if TypeName(schema) != "object" {
		t.Errorf("Expected type 'object', got %v", TypeName(schema))
	}
	prop, ok := schema.Properties["n"]
	if !ok || prop.TypeObject == nil {
		t.Fatalf("Expected property 'n', got %v", schema.Properties)
	}
	if TypeName(prop.TypeObject) != "integer" {
		t.Errorf("Expected 'n' to be integer, got %v", TypeName(prop.TypeObject))
	}
}

func TestFromValueDefaults(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"nil", nil},
		{"untyped", map[string]any{"properties": map[string]any{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := FromValue(tt.value)
			if err != nil {
				t.Fatalf("FromValue() error = %v", err)
			}
			if TypeName(schema) != "object" {
				t.Errorf("Expected type 'object', got %v", TypeName(schema))
			}
		})
	}
}

func TestFromJSONInvalid(t *testing.T) {
	if _, err := FromJSON([]byte(`{"type":`)); err == nil {
		t.Error("Expected error for truncated schema")
	}
}

func TestSummarize(t *testing.T) {
	schema := CreateObjectSchema(map[string]*jsonschema.Schema{
		"text":  CreateStringSchema("text to encode"),
		"strip": {},
	}, []string{"text"})

	want := "strip: any\ntext*: string # text to encode"
	if got := Summarize(schema); got != want {
		t.Errorf("Summarize() = %q, want %q", got, want)
	}

	if got := Summarize(nil); got != "(no parameters)" {
		t.Errorf("Summarize(nil) = %q", got)
	}
}
