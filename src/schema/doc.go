// Package schema provides helpers for the JSON Schema definitions that
// describe tool parameters.
//
// Remote MCP tools publish their input schema as an untyped JSON document;
// FromValue turns it into a swaggest schema the chat-completions request can
// carry, and Summarize renders it for terminal listings.
//
//	s, err := schema.FromValue(tool.InputSchema)
//	fmt.Println(schema.Summarize(s))
package schema
