// Package validation checks registry and store documents against the bundled
// JSON schemas. Identifier uniqueness is checked first and short-circuits
// schema validation.
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/agentstation/dappregistry/internal/embedded"
	"github.com/agentstation/dappregistry/pkg/errors"
	"github.com/agentstation/dappregistry/pkg/logging"
)

// Kind selects the root schema a document is validated against.
type Kind string

// Document kinds.
const (
	KindRegistry Kind = "registry"
	KindStores   Kind = "stores"
)

var urlFormat = regexp.MustCompile(`^https?://.+`)

// Diagnostic is one schema violation.
type Diagnostic struct {
	InstanceLocation string `json:"instanceLocation"`
	KeywordLocation  string `json:"keywordLocation"`
	Message          string `json:"message"`
}

// Diagnostics is the list of violations found in a document.
type Diagnostics []Diagnostic

// String serializes the diagnostics as a JSON array.
func (d Diagnostics) String() string {
	if len(d) == 0 {
		return "[]"
	}
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Sprintf("%v", []Diagnostic(d))
	}
	return string(data)
}

// Result reports the outcome of validating one document.
type Result struct {
	Kind        Kind        `json:"kind" yaml:"kind"`
	Valid       bool        `json:"valid" yaml:"valid"`
	Duplicates  []string    `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
	Diagnostics Diagnostics `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Err converts an invalid result into an error. It returns nil for a valid result.
func (r Result) Err() error {
	switch {
	case r.Valid:
		return nil
	case len(r.Duplicates) > 0:
		return errors.NewDuplicateIDError(r.resource(), r.Duplicates)
	default:
		return errors.NewValidationError(string(r.Kind), nil, "schema validation failed: "+r.Diagnostics.String())
	}
}

func (r Result) resource() string {
	if r.Kind == KindStores {
		return "store"
	}
	return "dApp"
}

// Validator holds the compiled schemas. It is safe for concurrent use.
type Validator struct {
	registry *jsonschema.Schema
	stores   *jsonschema.Schema
	logger   *zerolog.Logger
}

// New compiles the bundled schemas.
func New(logger *zerolog.Logger) (*Validator, error) {
	c := jsonschema.NewCompiler()
	c.AssertFormat()
	c.RegisterFormat(&jsonschema.Format{
		Name: "url",
		Validate: func(v any) error {
			s, ok := v.(string)
			if !ok {
				return nil
			}
			if !urlFormat.MatchString(s) {
				return fmt.Errorf("%q is not an http(s) url", s)
			}
			return nil
		},
	})

	for _, path := range []string{
		embedded.DappSchemaPath,
		embedded.FeaturedSchemaPath,
		embedded.RegistrySchemaPath,
		embedded.StoresSchemaPath,
	} {
		if err := addSchema(c, path); err != nil {
			return nil, err
		}
	}

	registry, err := c.Compile(schemaURL(embedded.RegistrySchemaPath))
	if err != nil {
		return nil, errors.NewConfigError("validation", "compiling registry schema", err)
	}
	stores, err := c.Compile(schemaURL(embedded.StoresSchemaPath))
	if err != nil {
		return nil, errors.NewConfigError("validation", "compiling stores schema", err)
	}

	return &Validator{
		registry: registry,
		stores:   stores,
		logger:   logging.Named(logger, "validation"),
	}, nil
}

func addSchema(c *jsonschema.Compiler, path string) error {
	data, err := embedded.Read(path)
	if err != nil {
		return errors.NewConfigError("validation", "reading "+path, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return errors.WrapParse("json", path, err)
	}
	if err := c.AddResource(schemaURL(path), doc); err != nil {
		return errors.NewConfigError("validation", "adding "+path, err)
	}
	return nil
}

func schemaURL(path string) string {
	return embedded.SchemaBaseURL + path[len("schemas/"):]
}

// ValidateRegistry validates a raw registry document.
func (v *Validator) ValidateRegistry(raw []byte) (Result, error) {
	return v.Validate(KindRegistry, raw)
}

// ValidateStores validates a raw store list document.
func (v *Validator) ValidateStores(raw []byte) (Result, error) {
	return v.Validate(KindStores, raw)
}

// Validate validates raw against the root schema for kind. The returned error
// is non-nil only when raw is not JSON at all; schema failures are reported
// through the Result.
func (v *Validator) Validate(kind Kind, raw []byte) (Result, error) {
	result := Result{Kind: kind}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return result, errors.WrapParse("json", string(kind), err)
	}

	var schema *jsonschema.Schema
	var ids []string
	switch kind {
	case KindRegistry:
		schema = v.registry
		ids = identifiers(inst, "dapps", "dappId")
	case KindStores:
		schema = v.stores
		ids = identifiers(inst, "dappStores", "key")
	default:
		return result, errors.NewValidationError("kind", kind, "unknown document kind")
	}

	if dups := Duplicates(ids); len(dups) > 0 {
		v.logger.Debug().Str("kind", string(kind)).Strs("duplicates", dups).Msg("duplicate identifiers")
		result.Duplicates = dups
		return result, nil
	}

	if err := schema.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return result, err
		}
		result.Diagnostics = diagnostics(ve)
		v.logger.Debug().Str("kind", string(kind)).Str("diagnostics", result.Diagnostics.String()).Msg("schema validation failed")
		return result, nil
	}

	result.Valid = true
	return result, nil
}

// identifiers collects the string values of field from each object in the
// list under key. Entries of any other shape are left to the schema.
func identifiers(inst any, key, field string) []string {
	doc, ok := inst.(map[string]any)
	if !ok {
		return nil
	}
	list, ok := doc[key].([]any)
	if !ok {
		return nil
	}
	var ids []string
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := entry[field].(string); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Duplicates returns every identifier that occurs more than once, sorted.
func Duplicates(ids []string) []string {
	counts := make(map[string]int, len(ids))
	for _, id := range ids {
		counts[id]++
	}
	var dups []string
	for id, n := range counts {
		if n >= 2 {
			dups = append(dups, id)
		}
	}
	sort.Strings(dups)
	return dups
}

func diagnostics(ve *jsonschema.ValidationError) Diagnostics {
	out := ve.BasicOutput()
	var diags Diagnostics
	for _, u := range out.Errors {
		if u.Error == nil {
			continue
		}
		diags = append(diags, Diagnostic{
			InstanceLocation: u.InstanceLocation,
			KeywordLocation:  u.KeywordLocation,
			Message:          fmt.Sprint(u.Error),
		})
	}
	if len(diags) == 0 {
		diags = append(diags, Diagnostic{
			InstanceLocation: out.InstanceLocation,
			KeywordLocation:  out.KeywordLocation,
			Message:          ve.Error(),
		})
	}
	return diags
}
