// Package timezones ships the IANA zone identifiers as a named enumeration
// for select controls. Register it with the engine's enum registry and
// declare range:"timezone" on a field.
package timezones
