// Package entity extracts weighted technical entities (file paths, errors,
// URLs, ports, ...) from turn text and builds the global entity → turn-index
// inverse index every scorer shares.
package entity

// Type is one of the eleven recognized technical entity kinds.
type Type string

const (
	TypeFilePath    Type = "file_path"
	TypeError       Type = "error"
	TypeException   Type = "exception"
	TypeURL         Type = "url"
	TypePort        Type = "port"
	TypeCommand     Type = "command"
	TypePackage     Type = "package"
	TypeHTTPStatus  Type = "http_status"
	TypeFunction    Type = "function"
	TypeClassName   Type = "class_name"
	TypeEnvVar      Type = "env_var"
)

// Weight is the fixed per-type weight used by every scorer.
var Weight = map[Type]float64{
	TypeFilePath:   1.00,
	TypeError:      1.00,
	TypeException:  0.90,
	TypeURL:        0.80,
	TypePort:       0.80,
	TypeCommand:    0.70,
	TypePackage:    0.70,
	TypeHTTPStatus: 0.60,
	TypeFunction:   0.50,
	TypeClassName:  0.40,
	TypeEnvVar:     0.40,
}

// Entity is a (type, surface) pair. Surfaces are normalized: trimmed, and
// lower-cased for case-insensitive types (everything except file_path,
// which retains case).
type Entity struct {
	Type    Type
	Surface string
}

// caseSensitive reports whether surfaces of t should keep their original
// case. Only file paths are case-sensitive; every other type is normalized
// to lower-case so e.g. "ENOENT" and "enoent" count as the same entity.
func caseSensitive(t Type) bool {
	return t == TypeFilePath
}
