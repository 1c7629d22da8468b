// Package orchestrator turns annotated model instances into form markup.
//
// The Engine extracts field descriptors through the model builder, groups
// them into display groups and dispatches every field to the renderer for
// its control kind. Render appends the result to a caller supplied node;
// RenderForm wraps it in a form element with a submit button.
package orchestrator
