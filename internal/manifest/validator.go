package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/package.schema.json
var packageSchemaJSON []byte

const packageSchemaURL = "package.schema.json"

var (
	schemaOnce     sync.Once
	packageSchema  *jsonschema.Schema
	schemaErr      error
	schemaMessages = message.NewPrinter(language.English)
)

func compiledPackageSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(packageSchemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("decoding package.json schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(packageSchemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("registering package.json schema: %w", err)
			return
		}
		if packageSchema, err = c.Compile(packageSchemaURL); err != nil {
			schemaErr = fmt.Errorf("compiling package.json schema: %w", err)
		}
	})
	return packageSchema, schemaErr
}

// SchemaWarnings checks package.json bytes against the embedded schema and
// describes each violation as "<pointer>: <message>", in document order and
// without repeats. Malformed JSON is an error, not a warning.
func SchemaWarnings(data []byte) ([]string, error) {
	schema, err := compiledPackageSchema()
	if err != nil {
		return nil, err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing package.json: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil, nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return nil, fmt.Errorf("validating package.json: %w", err)
	}

	var warnings []string
	seen := make(map[string]bool)
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, cause := range e.Causes {
				walk(cause)
			}
			return
		}
		if e.ErrorKind == nil {
			return
		}
		kw := e.ErrorKind.KeywordPath()
		// allOf and $ref only wrap the failures below them.
		if len(kw) == 0 || kw[len(kw)-1] == "allOf" || kw[len(kw)-1] == "$ref" {
			return
		}
		w := e.ErrorKind.LocalizedString(schemaMessages)
		if len(e.InstanceLocation) > 0 {
			w = "/" + strings.Join(e.InstanceLocation, "/") + ": " + w
		}
		if !seen[w] {
			seen[w] = true
			warnings = append(warnings, w)
		}
	}
	walk(verr)

	if len(warnings) == 0 {
		warnings = append(warnings, verr.Error())
	}
	return warnings, nil
}
