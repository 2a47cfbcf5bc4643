package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/driftdb/driftdb/pkg/crdt"
	"github.com/driftdb/driftdb/pkg/direrr"
)

// Validator is the synchronous schema contract the core depends on
// (spec §4.5). Implementations must not block on anything beyond
// local CPU work; the core rejects a Validator that signals it
// returned asynchronously via AsyncValidation.
type Validator interface {
	// Validate checks input against the named schema. On success it
	// returns the checked value (which may coerce types, e.g. JSON
	// numbers); on failure it returns a direrr.InvalidDataError
	// carrying the full issue list.
	Validate(schema string, input map[string]crdt.Value) (map[string]crdt.Value, error)
}

// Rule describes one field's constraint within a Schema.
type Rule struct {
	// Required rejects the field's absence from input.
	Required bool
	// Kind, if non-zero (crdt.KindNull is never a legal constraint
	// here), requires the field to hold this Kind when present.
	Kind crdt.Kind
}

// Schema is a named set of per-field rules. FieldValidator looks
// schemas up by name; a name with no registered Schema applies no
// constraints (see Validate).
type Schema struct {
	Fields map[string]Rule
}

// FieldValidator is the pack's stdlib-based Validator implementation:
// a small registry of named Schemas checked field-by-field. There is
// no ecosystem schema-validation library anywhere in the retrieved
// reference pack (see DESIGN.md), so this follows the pack's own idiom
// of explicit, hand-rolled precondition checks rather than adopting an
// out-of-pack dependency.
type FieldValidator struct {
	schemas map[string]Schema
}

// NewFieldValidator creates an empty registry.
func NewFieldValidator() *FieldValidator {
	return &FieldValidator{schemas: make(map[string]Schema)}
}

// RegisterSchema adds or replaces a named schema.
func (v *FieldValidator) RegisterSchema(name string, schema Schema) {
	v.schemas[name] = schema
}

// Validate implements Validator. An unregistered schema name validates
// everything as-is (no constraints), which keeps collections usable
// without a schema while still allowing one to be layered on later.
func (v *FieldValidator) Validate(schema string, input map[string]crdt.Value) (map[string]crdt.Value, error) {
	rules, ok := v.schemas[schema]
	if !ok {
		return input, nil
	}

	var issues []direrr.Issue
	for name, rule := range rules.Fields {
		val, present := input[name]
		if !present {
			if rule.Required {
				issues = append(issues, direrr.Issue{Path: name, Message: "required field is missing"})
			}
			continue
		}
		if rule.Kind != crdt.KindNull && val.Kind() != rule.Kind {
			issues = append(issues, direrr.Issue{
				Path:    name,
				Message: fmt.Sprintf("expected %s, got %s", kindName(rule.Kind), kindName(val.Kind())),
			})
		}
	}
	if len(issues) > 0 {
		return nil, direrr.InvalidData(issues)
	}
	return input, nil
}

func kindName(k crdt.Kind) string {
	switch k {
	case crdt.KindNull:
		return "null"
	case crdt.KindBool:
		return "bool"
	case crdt.KindNumber:
		return "number"
	case crdt.KindString:
		return "string"
	case crdt.KindArray:
		return "array"
	case crdt.KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// SchemaFromStruct derives a Schema from a Go struct's fields using a
// `driftdb` struct tag, the same reflect-driven approach the pack's
// explicit precondition-checking code (pkg/worker/secrets.go,
// pkg/security/certs.go) uses for validating configuration shapes.
// Tag syntax: `driftdb:"name,required"` or `driftdb:"name"`. Fields
// without a tag use their Go name lowercased.
func SchemaFromStruct(v interface{}) Schema {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	fields := make(map[string]Rule, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := strings.ToLower(sf.Name)
		required := false
		if tag, ok := sf.Tag.Lookup("driftdb"); ok {
			parts := strings.Split(tag, ",")
			if parts[0] != "" {
				name = parts[0]
			}
			for _, opt := range parts[1:] {
				if opt == "required" {
					required = true
				}
			}
		}
		fields[name] = Rule{Required: required, Kind: kindFromGoType(sf.Type)}
	}
	return Schema{Fields: fields}
}

func kindFromGoType(t reflect.Type) crdt.Kind {
	switch t.Kind() {
	case reflect.Bool:
		return crdt.KindBool
	case reflect.String:
		return crdt.KindString
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return crdt.KindNumber
	case reflect.Slice, reflect.Array:
		return crdt.KindArray
	case reflect.Map, reflect.Struct:
		return crdt.KindObject
	default:
		return crdt.KindNull
	}
}
