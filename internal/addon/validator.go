package addon

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/descriptor.schema.json
var schemaBytes []byte

var printer = message.NewPrinter(language.English)

// ValidationIssue is a single schema violation.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/version"); empty for the whole descriptor
	Message string // Human-readable error message
	Keyword string // Schema keyword that failed
}

// descriptorSchema compiles the embedded schema on first use.
var descriptorSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema JSON: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("descriptor.schema.json", doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	schema, err := c.Compile("descriptor.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return schema, nil
})

// validateFields checks extracted descriptor fields against the schema.
// Violations come back as a *SchemaError.
func validateFields(fields map[string]any) error {
	schema, err := descriptorSchema()
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	// Round-trip through JSON so numbers reach the validator as json.Number.
	jsonData, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("unexpected validation error type: %w", err)
	}
	return &SchemaError{Issues: leafIssues(validationErr)}
}

// leafIssues flattens the ValidationError tree into its leaves, ordered by
// instance path so messages are stable.
func leafIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		for _, cause := range e.Causes {
			walk(cause)
		}
		if len(e.Causes) > 0 || e.ErrorKind == nil {
			return
		}
		issue := ValidationIssue{Message: e.ErrorKind.LocalizedString(printer)}
		if len(e.InstanceLocation) > 0 {
			issue.Path = "/" + strings.Join(e.InstanceLocation, "/")
		}
		if kw := e.ErrorKind.KeywordPath(); len(kw) > 0 {
			issue.Keyword = kw[len(kw)-1]
		}
		issues = append(issues, issue)
	}
	walk(ve)

	if len(issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Path < issues[j].Path })
	return issues
}
