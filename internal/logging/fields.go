// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"
	FieldFormat = "format"

	// Engine fields.
	FieldPattern = "pattern"
	FieldTrigger = "trigger"
	FieldEdits   = "edits"
	FieldIndex   = "index"
	FieldLine    = "line"

	// Keyboard fields.
	FieldBinding = "binding"
	FieldKey     = "key"

	// Replay statistics.
	FieldKeys     = "keys"
	FieldLines    = "lines"
	FieldDocument = "document_length"
	FieldSaves    = "saves"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Configuration fields.
	FieldLanguages = "languages"
)
