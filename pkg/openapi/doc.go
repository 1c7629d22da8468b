// Package openapi converts OpenAPI component schemas into form models.
//
// Each object schema becomes a Model implementing model.Describer, so the
// orchestrator renders it without reflection. Property metadata comes from
// the schema itself (title, description, format, enum, length and range
// constraints) and from x-formgen extension hints:
//
//	email:
//	  type: string
//	  format: email
//	  x-formgen:
//	    label: Work email
//	    group: Contact
//	    order: 1
package openapi
