/*
Package validate implements the synchronous schema-checking contract
the collection engine depends on (spec §4.5): validate a candidate
document against a named schema, returning either the checked value or
a list of path/message issues the caller surfaces verbatim.

# Why synchronous

The Validator interface is deliberately narrow — one method, no
context.Context, no channel, no future. The core calls Validate
in-line on the single-writer worker goroutine during Insert and
Update (Merge does not call it); a Validator that needed to block on I/O (a network schema
registry, a database lookup) would stall every mutation behind it. Spec
§4.5 rejects that outright: a Validator is expected to do local CPU
work only, and the AsyncValidationError in pkg/direrr exists precisely
to name the failure mode of a Validator that tries to be asynchronous
anyway.

	Insert/Update (single worker goroutine)
	              │
	              ▼
	      Validator.Validate(schema, input)
	              │
	      ┌───────┴────────┐
	      ▼                ▼
	   success          *InvalidDataError
	 (checked value)    (Issues []Issue)

# FieldValidator

FieldValidator is this repository's own Validator implementation: a
small in-memory registry of named Schemas, each a set of per-field
Rules (Required, and an optional Kind constraint against crdt.Value's
tagged union). There is no ecosystem schema-validation library anywhere
in the retrieved reference pack this repository is built from (see
DESIGN.md's grounding ledger) — this follows the pack's own idiom of
explicit, hand-rolled precondition checks rather than reaching for an
out-of-pack dependency just to validate a handful of field rules.

	schema := validate.Schema{
		Fields: map[string]validate.Rule{
			"name": {Required: true, Kind: crdt.KindString},
			"age":  {Kind: crdt.KindNumber},
		},
	}
	v := validate.NewFieldValidator()
	v.RegisterSchema("users", schema)

An unregistered schema name validates everything as-is with no
constraints — a collection is usable with no schema at all, and a
schema can be layered on at any point afterward without touching
existing data.

# Deriving a Schema from a Go struct

SchemaFromStruct builds a Schema by reflecting over a struct's
exported fields and an optional `driftdb:"name,required"` tag,
following the same reflect-driven struct-tag convention the reference
pack's own precondition-checking code uses for validating
configuration shapes. This lets an application define its document
shape once, as a plain Go struct, and derive both its JSON encoding and
its driftdb validation rules from the same type.

# See Also

  - pkg/crdt for the Value/Kind types a Rule constrains against
  - pkg/direrr for InvalidDataError/Issue and AsyncValidationError
  - pkg/collection for the single caller of Validator.Validate
*/
package validate
