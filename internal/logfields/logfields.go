// Package logfields defines the logging field names shared across packages.
package logfields

const (
	// LogSubsys is the field denoting the subsystem when logging
	LogSubsys = "subsys"

	// Model is the name of the model being rendered
	Model = "model"

	// Field is the raw field name
	Field = "field"

	// Control is the resolved control kind
	Control = "control"

	// Group is the display group key
	Group = "group"

	// Culture is the culture used for localized strings
	Culture = "culture"

	// Path is a file system path
	Path = "path"

	// Schema is an OpenAPI component schema name
	Schema = "schema"

	// Count is a number of items
	Count = "count"
)
