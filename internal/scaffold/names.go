package scaffold

import (
	"fmt"
	"regexp"
	"strings"
)

// namePattern accepts names that are both a C++ identifier and a portable
// path segment.
var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

const maxNameLength = 64

// reservedNames clash with the engine's own types and namespace, or with the
// C++ keywords the name would be spliced next to.
var reservedNames = map[string]bool{
	"BladeEngine": true, "Game": true, "World": true, "Entity": true,

	"alignas": true, "alignof": true, "and": true, "asm": true, "auto": true,
	"bool": true, "break": true, "case": true, "catch": true, "char": true,
	"class": true, "const": true, "constexpr": true, "continue": true,
	"decltype": true, "default": true, "delete": true, "do": true,
	"double": true, "else": true, "enum": true, "explicit": true,
	"export": true, "extern": true, "false": true, "float": true, "for": true,
	"friend": true, "goto": true, "if": true, "inline": true, "int": true,
	"long": true, "mutable": true, "namespace": true, "new": true,
	"noexcept": true, "not": true, "nullptr": true, "operator": true,
	"or": true, "private": true, "protected": true, "public": true,
	"register": true, "return": true, "short": true, "signed": true,
	"sizeof": true, "static": true, "struct": true, "switch": true,
	"template": true, "this": true, "throw": true, "true": true, "try": true,
	"typedef": true, "typename": true, "union": true, "unsigned": true,
	"using": true, "virtual": true, "void": true, "volatile": true,
	"while": true,
}

// windowsDeviceNames cannot be used as file or directory names on Windows.
var windowsDeviceNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// ValidateProjectName rejects names that would produce a malformed class
// name, file name, or CMake target.
func ValidateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name must not be empty")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("invalid project name %q: longer than %d characters", name, maxNameLength)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid project name %q: must match pattern [A-Za-z_][A-Za-z0-9_]*", name)
	}
	if reservedNames[name] {
		return fmt.Errorf("invalid project name %q: reserved word", name)
	}
	if windowsDeviceNames[strings.ToUpper(name)] {
		return fmt.Errorf("invalid project name %q: reserved device name", name)
	}
	if strings.HasPrefix(name, "__") {
		return fmt.Errorf("invalid project name %q: identifiers starting with __ are reserved", name)
	}
	return nil
}
