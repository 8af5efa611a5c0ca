// Package manifest parses and validates template manifests. A template
// manifest (template.yaml) declares the directory skeleton, the rendered files
// and the engine assets that make up a project template. Manifests are checked
// against an embedded JSON Schema before they are decoded.
package manifest
