// Package manifest handles pyproject.toml payloads: resolving the --toml
// argument, structured decoding for README title derivation, and JSON
// Schema validation of the decoded document. The manifest text itself is
// always written to disk verbatim.
package manifest
