package alunoapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const listSchemaURL = "aluno_list.schema.json"

// listSchemaJSON describes GET /aluno. Extra properties such as Mongo's __v are tolerated and
// missing or null fields render as blank cells.
const listSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["_id"],
    "properties": {
      "_id": {"type": "string", "minLength": 1},
      "nome": {"type": ["string", "null"]},
      "matricula": {"type": ["string", "null"]},
      "curso": {"type": ["string", "null"]},
      "bimestre": {"type": ["string", "null"]}
    }
  }
}`

type listSchema struct {
	schema *jsonschema.Schema
}

func compileListSchema() (*listSchema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(listSchemaURL, strings.NewReader(listSchemaJSON)); err != nil {
		return nil, fmt.Errorf("load aluno list schema: %w", err)
	}

	schema, err := compiler.Compile(listSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile aluno list schema: %w", err)
	}

	return &listSchema{schema: schema}, nil
}

func (s *listSchema) validate(body []byte) error {
	var document interface{}
	if err := json.Unmarshal(body, &document); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if err := s.schema.Validate(document); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}
