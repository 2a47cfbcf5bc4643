/*
Package direrr collects driftdb's error taxonomy in one place so
callers at every layer — storage adapters, the validator, the
collection engine, the CLI — return and inspect the same small set of
kinds (spec §7) instead of ad hoc sentinel values or raw fmt.Errorf
strings a caller would have to substring-match.

# Taxonomy

	Kind()             constructor            carries
	───────────────────────────────────────────────────────────────
	NotFound           NotFound(category, id)  Category, ID
	AlreadyExists      AlreadyExists(id)       ID
	InvalidPath        InvalidPath(path, why)  Path, Reason
	InvalidData        InvalidData(issues)     Issues []Issue
	InvalidContent     InvalidContent(p, why)  Path, Reason
	ClockRegression    ClockRegression(detail) Detail
	StorageFailure     StorageFailure(op, err) Op, Cause (unwraps)
	AsyncValidation    AsyncValidation(schema) Schema

Every constructor returns a plain `error` so call sites don't need to
import this package's concrete types just to propagate a failure, but
every concrete type also implements Kind() string, letting a caller
that only cares about the category switch on that instead of an
errors.As type assertion:

	if kinder, ok := err.(interface{ Kind() string }); ok && kinder.Kind() == "NotFound" {
		// treat as absent, not a failure
	}

Most call sites in this codebase use errors.As against the concrete
pointer type instead, since that also recovers the structured fields
(Issues, Cause, Category) the message string alone doesn't expose:

	var nf *direrr.NotFoundError
	if errors.As(err, &nf) {
		// nf.Category, nf.ID available here
	}

# NotFound vs AlreadyExists

NotFound's Category distinguishes what was missing — "document" when a
collection operation can't find an id, "path" when a storage adapter
can't find the raw blob underneath. A Get for an absent document
translates the NotFound into a nil result rather than propagating the
error (spec §7's "propagation policy": absence is a normal outcome for
a read, not a failure); Insert surfaces AlreadyExists directly, since
inserting over an existing id is a caller error worth reporting.

# ClockRegression is a warning, not a rejection

ClockRegressionError is unusual in this taxonomy: every other kind here
represents an operation that failed outright. ClockRegression instead
reports that pkg/hlc's Clock.Observe folded in a remote timestamp that
looked implausibly far from local wall-clock time — the observation
still happens (the clock still advances past it), this is purely a
signal for an operator that a peer's clock may be misconfigured. Package
collection's Merge logs it at Warn level rather than aborting the
merge.

# StorageFailure wraps, the rest don't

StorageError is the only kind with an Unwrap method, because it is the
only kind that exists to forward an underlying failure (a disk error,
a bbolt transaction failure) rather than to describe a condition this
package detected itself. errors.Is against the original cause works
through a StorageError the same as it would unwrapped.

# See Also

  - pkg/storage for NotFound/StorageFailure's primary callers
  - pkg/validate for InvalidData/AsyncValidation
  - pkg/collection for AlreadyExists/NotFound(document)
  - pkg/hlc for the plausibility check that can produce ClockRegression
*/
package direrr
