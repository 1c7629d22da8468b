// Package i18n loads per-culture display strings from JSON or YAML files and
// exposes them as a model.Localizer. Cultures are matched with
// golang.org/x/text/language so "fr-CA" falls back to "fr", and a file named
// default.{json,yaml} supplies neutral strings.
package i18n
