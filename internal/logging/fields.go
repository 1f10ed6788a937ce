package logging

// Field names for structured log entries.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldOutput = "output"
	FieldKind   = "kind"

	// Pattern and navigation.
	FieldPattern   = "pattern"
	FieldFlags     = "flags"
	FieldMarkers   = "markers"
	FieldCursor    = "cursor"
	FieldDirection = "direction"
	FieldRemoved   = "removed"
	FieldWritten   = "written"

	// Configuration and state.
	FieldConfig  = "config"
	FieldSource  = "source"
	FieldBackend = "backend"
	FieldStore   = "store"
	FieldFlavor  = "flavor"

	// Version.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
