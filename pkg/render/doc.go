// Package render holds the options that shape generated form markup: id and
// name generation, CSS classes, group wrappers, data binding and the hooks
// callers use to override options, disabled state and extra attributes.
//
// It also provides the per-field FieldContext used by the orchestrator, a
// culture-aware value formatter and the bluemonday policies applied to icon
// and label markup.
package render
