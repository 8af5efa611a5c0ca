// Package engine fetches the Blade Engine repository into a temporary clone.
// It shells out to git, cloning recursively so vendored submodules are
// present, and can resolve a semantic-version constraint to a release tag.
package engine
