package parser

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/jest-report.schema.json
var reportSchemaJSON []byte

var loadReportSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(reportSchemaJSON))
})

// validateReport checks that jsonText is valid JSON with the shape of a Jest report
func validateReport(jsonText string) error {
	if !json.Valid([]byte(jsonText)) {
		return &ParseError{Kind: ErrMalformedJSON, Message: "report is not valid JSON"}
	}

	schema, err := loadReportSchema()
	if err != nil {
		return fmt.Errorf("load report schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(jsonText))
	if err != nil {
		return &ParseError{Kind: ErrMalformedJSON, Message: err.Error()}
	}
	if result.Valid() {
		return nil
	}

	fields := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		fields = append(fields, desc.String())
	}
	return &ParseError{
		Kind:    ErrSchemaMismatch,
		Message: fmt.Sprintf("%d violation(s)", len(fields)),
		Fields:  fields,
	}
}
