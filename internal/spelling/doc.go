// Package spelling models the spell-checking boundary of the pipeline.
//
// The actual spell-checking provider is external; it is consumed through the
// Checker interface and returns raw candidate matches. This package owns the
// parts that are deterministic product logic: preparing subtitle text for a
// provider request, constructing matches with an actionability flag, and
// filtering false positives (brand names, case- or punctuation-only
// differences) out of the raw match list.
package spelling
