package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/foreclosure-parser/constants"
	"github.com/joseph-ayodele/foreclosure-parser/internal/entity"
)

// BuildRowJSONSchema returns the JSON-Schema (draft 2020-12 subset) for one
// output row keyed by column name. Every column is required; "NA" marks absence.
func BuildRowJSONSchema() map[string]any {
	props := make(map[string]any, len(entity.Columns))
	for _, col := range entity.Columns {
		props[col] = map[string]any{"type": "string", "minLength": 1}
	}
	props["Index Number"] = map[string]any{"type": "string", "pattern": `^\d{3,6}/\d{2,4}$`}
	props["Borough"] = enumProp(constants.BoroughStrings())
	props["Auction Status"] = enumProp(constants.AuctionStatusStrings())
	props["Judgment Amount"] = map[string]any{"type": "string", "pattern": `^(NA|[\d,]+\.\d{2})$`}
	props["Block"] = digitsProp(3, 6)
	props["Lot"] = digitsProp(1, 4)

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             entity.Columns,
	}
}

func enumProp(values []string) map[string]any {
	return map[string]any{
		"type": "string",
		"enum": append(values, constants.NotAvailable),
	}
}

func digitsProp(min, max int) map[string]any {
	return map[string]any{
		"type":    "string",
		"pattern": fmt.Sprintf(`^(NA|\d{%d,%d})$`, min, max),
	}
}

// compileSchema compiles a schema map with the jsonschema compiler.
func compileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("row.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("row.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}
