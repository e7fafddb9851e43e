// Package project turns a freshly scaffolded Android project into the
// customized layout: it drives the scaffolding subprocess, flattens the
// package-derived source tree, applies the per-file rewrite rule sets,
// strips whitespace from the generated markup, writes the ignore list
// and links shared configuration.
//
// The rule tables in this package are the single place that knows what
// the scaffolding templates look like. Everything else (transactional
// sessions, markers, counting) lives in pkg/rewrite and is
// template-agnostic.
package project
