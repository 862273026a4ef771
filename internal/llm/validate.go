package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas holds *jsonschema.Schema values keyed by Schema.Name.
// Schema names are fixed per output contract, so the first compile wins.
var compiledSchemas sync.Map

// validateResponse checks raw against schema. A nil schema accepts
// anything; failures are *ErrInvalidResponse carrying raw.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	invalid := func(format string, args ...any) error {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf(format, args...)}
	}

	// UnmarshalJSON keeps numbers as json.Number so integer checks are exact.
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalid("invalid JSON: %w", err)
	}
	compiled, err := CompileSchema(schema)
	if err != nil {
		return invalid("%w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return invalid("schema %q: %w", schema.Name, err)
	}
	return nil
}

// CompileSchema compiles schema.Definition once per schema name.
func CompileSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := compiledSchemas.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants decoded JSON values, not Go maps with typed slices.
	encoded, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("encode schema %q: %w", schema.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode schema %q: %w", schema.Name, err)
	}

	url := "mem://vidya/" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("load schema %q: %w", schema.Name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	actual, _ := compiledSchemas.LoadOrStore(schema.Name, compiled)
	return actual.(*jsonschema.Schema), nil
}
