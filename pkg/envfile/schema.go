package envfile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/matzehuels/fonda/pkg/errors"
)

//go:embed schema/environment.schema.json
var schemaBytes []byte

const schemaURL = "environment.schema.json"

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult is the outcome of checking a document against the schema.
type ValidationResult struct {
	Valid  bool
	Issues []Issue
}

// Issue is one schema violation.
type Issue struct {
	Path    string // Instance location, e.g. "/dependencies/2"
	Message string
	Keyword string // Failing schema keyword, e.g. "type"
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// SchemaError reports a document that does not match the schema.
type SchemaError struct {
	Issues []Issue
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("%s: %s", errors.ErrCodeInvalidEnvironment, strings.Join(parts, "; "))
}

// Unwrap exposes the code as an *errors.Error for errors.Is checks.
func (e *SchemaError) Unwrap() error {
	return errors.New(errors.ErrCodeInvalidEnvironment, "environment document does not match the schema (%d issues)", len(e.Issues))
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate checks data against the environment schema. The error return is
// for syntax errors and schema compilation failures; violations are
// reported in the result.
func Validate(data []byte, format Format) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load environment schema")
	}

	raw, err := decodeGeneric(data, format)
	if err != nil {
		return nil, err
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEnvironment, err, "convert %s document to JSON", format)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "prepare document for validation")
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "unexpected validation error")
	}
	return &ValidationResult{Issues: extractIssues(ve)}, nil
}

// decodeGeneric decodes data into JSON-compatible values.
func decodeGeneric(data []byte, format Format) (any, error) {
	var raw any
	switch format {
	case YAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidEnvironment, err, "parse YAML")
		}
		return normalizeYAML(raw), nil
	case TOML:
		var m map[string]any
		if _, err := toml.Decode(string(data), &m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidEnvironment, err, "parse TOML")
		}
		return m, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown format %q", format)
	}
}

// normalizeYAML converts maps with non-string keys so encoding/json accepts
// them.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[k] = normalizeYAML(v)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[fmt.Sprint(k)] = normalizeYAML(v)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, v := range val {
			a[i] = normalizeYAML(v)
		}
		return a
	default:
		return val
	}
}

// extractIssues flattens the validation error tree into leaf issues.
func extractIssues(ve *jsonschema.ValidationError) []Issue {
	var issues []Issue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		return []Issue{{Message: ve.Error()}}
	}

	seen := make(map[string]bool)
	var result []Issue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}

	var keyword, msg string
	if ve.ErrorKind != nil {
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			keyword = kw[len(kw)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}
	// Container keywords only say that a branch failed.
	if keyword == "" || keyword == "oneOf" || keyword == "allOf" || keyword == "$ref" {
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}
	*issues = append(*issues, Issue{Path: path, Message: msg, Keyword: keyword})
}
