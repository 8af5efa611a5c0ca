// Package platform provides cross-platform filesystem helpers used when
// relocating engine files: permission bits, symlink replication, and
// detection of renames that cross filesystem boundaries.
package platform
