// Package overlay loads display overrides from JSON or YAML documents and
// applies them on top of struct tag metadata. Documents are keyed by model
// name and field name:
//
//	models:
//	  Profile:
//	    fields:
//	      Email:
//	        label: Work email
//	        group: Contact
//	        order: 1
//
// A Store implements model.DisplayOverrider and is registered with
// orchestrator.WithOverlay.
package overlay
