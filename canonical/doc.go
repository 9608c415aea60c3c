// Package canonical serializes nested payload data into a single deterministic
// string suitable for hashing.
//
// # Value Domain
//
// Canonicalize accepts a mapping at the top level and recursively encodes the
// closed JSON-compatible domain:
//
//   - mappings with string keys (map[string]any, or any map whose key kind is string)
//   - sequences (slices and arrays, except []byte)
//   - integers of every Go kind, floats, and json.Number
//   - strings, booleans, and nil
//
// Pointers and interfaces are followed; a nil pointer encodes as null. Anything
// else (structs, channels, functions, cyclic values) fails with
// ipcerr.ErrTypeMismatch, and so does a top-level value that is not a mapping.
//
// # Canonical Form
//
// The output is JSON text laid out exactly as follows, so identifiers computed
// here match identifiers computed by other producers of the same contract:
//
//   - object members are sorted by key at every depth, written as {"k": v, "k2": v2}
//   - arrays keep element order, written as [a, b]
//   - strings keep non-ASCII code points literally; only '"', '\\' and C0
//     control characters are escaped
//   - true, false and null are literal tokens
//   - numbers follow FormatInt and FormatFloat
//
// # Number Formatting
//
// Integers are plain decimal. Floats use the shortest digit string that round
// trips to the same float64, in positional notation when the decimal exponent is
// in [-4, 16) and with at least one fractional digit ("2.0", "0.0001"), otherwise
// in scientific notation with a signed, two-digit minimum exponent ("1e-05",
// "1.5e+16"). This rule is frozen: changing it changes every identifier derived
// from a payload or temperature containing a float.
package canonical
