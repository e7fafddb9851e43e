// Package rewrite implements the transactional line-oriented rewrite
// engine at the heart of mkdroid.
//
// A Session owns one file's rewrite: it streams the original's lines
// into a shadow file, counts the structural edits the caller records,
// and publishes the result with a single rename only when the observed
// count equals the expected count. Any other outcome leaves the
// original byte-identical and removes the shadow, so no other process
// ever sees a partially rewritten file.
//
// Markers locate edit points by substring or regex; they never parse
// the target markup structurally, which keeps rule tables stable
// across scaffolding-tool versions. RuleSets bundle the per-file edit
// tables and derive the expected edit count from their own shape.
package rewrite
