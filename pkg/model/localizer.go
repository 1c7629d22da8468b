package model

// Localizer resolves display strings for a culture. Implementations return ""
// when no entry exists so callers can fall back to a humanized key.
type Localizer interface {
	DisplayString(key, culture string) string
}

// LocalizerFunc adapts a function to Localizer.
type LocalizerFunc func(key, culture string) string

// DisplayString implements Localizer.
func (f LocalizerFunc) DisplayString(key, culture string) string {
	if f == nil {
		return ""
	}
	return f(key, culture)
}
