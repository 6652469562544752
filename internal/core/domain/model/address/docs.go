// Package address provides free-text address transformations used to improve
// geocoding match rates, plus the metric events recorded for each attempted
// transformation.
//
// The package includes:
//   - Variant/VariantKind: the fixed, ordered set of address rewrites tried
//     during fuzzy geocoding (original text first, progressively more
//     aggressive simplifications after)
//   - MetricEvent/MetricBuffer: per-request bookkeeping of which variant
//     ultimately resolved, flushed to the metrics store after dispatch
//
// All transformations are pure string functions: they never touch the
// network and always return a value (falling back to their input when the
// text does not match the expected shape).
package address
