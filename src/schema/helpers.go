package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	jsonschema "github.com/swaggest/jsonschema-go"
)

// CreateStringSchema creates a JSON schema for a string field
func CreateStringSchema(description string) *jsonschema.Schema {
	strType := jsonschema.SimpleType("string")
	return &jsonschema.Schema{
		Type:        &jsonschema.Type{SimpleTypes: &strType},
		Description: &description,
	}
}

// CreateNumberSchema creates a JSON schema for a number field
func CreateNumberSchema(description string) *jsonschema.Schema {
	numType := jsonschema.SimpleType("number")
	return &jsonschema.Schema{
		Type:        &jsonschema.Type{SimpleTypes: &numType},
		Description: &description,
	}
}

// CreateObjectSchema creates a JSON schema for an object with properties and required fields
func CreateObjectSchema(properties map[string]*jsonschema.Schema, required []string) *jsonschema.Schema {
	schemaProps := make(map[string]jsonschema.SchemaOrBool, len(properties))
	for name, prop := range properties {
		schemaProps[name] = jsonschema.SchemaOrBool{TypeObject: prop}
	}

	objType := jsonschema.SimpleType("object")
	return &jsonschema.Schema{
		Type:       &jsonschema.Type{SimpleTypes: &objType},
		Properties: schemaProps,
		Required:   required,
	}
}

// FromJSON parses a raw JSON Schema document. An empty document yields an
// object schema without properties.
func FromJSON(raw []byte) (*jsonschema.Schema, error) {
	if len(strings.TrimSpace(string(raw))) == 0 || string(raw) == "null" {
		return CreateObjectSchema(nil, nil), nil
	}
	var s jsonschema.Schema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("invalid JSON schema: %w", err)
	}
	if s.Type == nil {
		objType := jsonschema.SimpleType("object")
		s.Type = &jsonschema.Type{SimpleTypes: &objType}
	}
	return &s, nil
}

// FromValue converts a decoded schema (for example a map[string]any read off
// the wire) into a typed schema.
func FromValue(v any) (*jsonschema.Schema, error) {
	if v == nil {
		return CreateObjectSchema(nil, nil), nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return FromJSON(raw)
}

// TypeName returns the first simple type of s, or "any".
func TypeName(s *jsonschema.Schema) string {
	if s == nil || s.Type == nil {
		return "any"
	}
	if s.Type.SimpleTypes != nil {
		return string(*s.Type.SimpleTypes)
	}
	if len(s.Type.SliceOfSimpleTypeValues) > 0 {
		return string(s.Type.SliceOfSimpleTypeValues[0])
	}
	return "any"
}

// Summarize renders the top-level properties of an object schema as
// "name: type # description" lines, marking required ones with '*'.
func Summarize(s *jsonschema.Schema) string {
	if s == nil || len(s.Properties) == 0 {
		return "(no parameters)"
	}

	required := make(map[string]bool, len(s.Required))
	for _, name := range s.Required {
		required[name] = true
	}

	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		prop := s.Properties[name].TypeObject
		label := name
		if required[name] {
			label += "*"
		}
		line := fmt.Sprintf("%s: %s", label, TypeName(prop))
		if prop != nil && prop.Description != nil && *prop.Description != "" {
			line += " # " + *prop.Description
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
