// =============================================================================
// passwd2json - Output Validation
// =============================================================================
//
// Checks the rendered document against the output schema before anything is
// written to disk. A document that fails here is never written, so a
// scheduled run cannot leave behind output that looks complete but is not.
//
// SCHEMA:
//   object
//     <username>: object (no other keys)
//       uid:       string
//       full_name: string
//       groups:    array of string
//
// =============================================================================

package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ginjaninja78/passwd2json/internal/types"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaURL identifies the embedded output schema.
const SchemaURL = "https://passwd2json.dev/schemas/output.json"

// OutputSchema is the JSON Schema every rendered document must satisfy.
const OutputSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"title": "passwd2json output",
	"type": "object",
	"additionalProperties": {
		"type": "object",
		"required": ["uid", "full_name", "groups"],
		"additionalProperties": false,
		"properties": {
			"uid": {"type": "string"},
			"full_name": {"type": "string"},
			"groups": {
				"type": "array",
				"items": {"type": "string"}
			}
		}
	}
}`

// Validator checks rendered documents against a compiled schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the embedded output schema.
func NewValidator() (*Validator, error) {
	return NewValidatorFromSchema(SchemaURL, OutputSchema)
}

// NewValidatorFromSchema compiles an arbitrary schema document.
func NewValidatorFromSchema(url, schema string) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, strings.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Validator{schema: compiled}, nil
}

// Validate parses raw and checks it against the schema. Both a syntax error
// and a schema mismatch are reported as types.ErrSchemaViolation.
func (v *Validator) Validate(raw []byte) error {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("%w: invalid JSON: %w", types.ErrSchemaViolation, err)
	}

	if err := v.schema.Validate(payload); err != nil {
		return fmt.Errorf("%w: %w", types.ErrSchemaViolation, err)
	}

	return nil
}
