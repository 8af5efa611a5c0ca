// Package relocate moves engine files out of the temporary clone into a
// generated project. Moves are plain renames when source and destination share
// a filesystem and fall back to a recursive copy followed by removal
// otherwise. Git metadata left behind by submodules is stripped from the
// relocated tree, since it points back into the clone being deleted.
package relocate
