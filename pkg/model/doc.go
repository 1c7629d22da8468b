// Package model defines the field descriptors, display groups and control
// inference rules shared by the builder and the orchestrator. Builders in
// internal/model return the types defined here. Inference maps declared hints,
// data-type classifications and the native Go type of a field onto one of a
// closed set of control kinds (plain input, checkbox, radio group, select,
// file, textarea, hidden). Option lists come either from a bounded
// enumeration or from the `key=value|bare` option grammar.
package model
