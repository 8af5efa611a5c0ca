// Package scaffold holds the built-in project template and renders it. The
// template (manifest plus text/template bodies) is embedded in the binary; the
// generator package turns the rendered output into filesystem steps.
package scaffold
