package extraction

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const summarySchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "definitions": {
    "amount": {"type": ["number", "string", "null"]},
    "item": {
      "type": "object",
      "properties": {
        "id": {"type": ["string", "number", "null"]},
        "descricao": {"type": ["string", "null"]},
        "description": {"type": ["string", "null"]},
        "quantidade": {"$ref": "#/definitions/amount"},
        "quantity": {"$ref": "#/definitions/amount"},
        "valorUnitario": {"$ref": "#/definitions/amount"},
        "unit_price": {"$ref": "#/definitions/amount"},
        "total": {"$ref": "#/definitions/amount"},
        "line_total": {"$ref": "#/definitions/amount"}
      }
    }
  },
  "properties": {
    "loja": {"type": ["string", "null"]},
    "store": {"type": ["string", "null"]},
    "data_compra": {"type": ["string", "null"]},
    "purchase_date": {"type": ["string", "null"]},
    "total_cupom": {"$ref": "#/definitions/amount"},
    "total_amount": {"$ref": "#/definitions/amount"},
    "moeda": {"type": ["string", "null"]},
    "currency": {"type": ["string", "null"]},
    "itens": {"type": "array", "items": {"$ref": "#/definitions/item"}},
    "items": {"type": "array", "items": {"$ref": "#/definitions/item"}}
  }
}`

var summarySchema = jsonschema.MustCompileString("receipt-summary.json", summarySchemaJSON)

// ValidatePayload checks that data is a JSON object of the summary shape.
func ValidatePayload(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := summarySchema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}
