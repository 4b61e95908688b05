package engine

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed match_results_schema.json
var matchResultsSchema string

// validateMatchResults checks a raw /api/v1/match response against the
// embedded schema. The engine is an external service; its output is
// untrusted until it validates.
func validateMatchResults(body []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(matchResultsSchema)
	documentLoader := gojsonschema.NewBytesLoader(body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if result.Valid() {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("invalid match response:")
	for _, desc := range result.Errors() {
		sb.WriteString(fmt.Sprintf(" %s: %s;", desc.Field(), desc.Description()))
	}
	return fmt.Errorf("%s", strings.TrimSuffix(sb.String(), ";"))
}
