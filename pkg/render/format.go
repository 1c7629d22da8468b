package render

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultTimeLayout formats time.Time values without a declared format.
const DefaultTimeLayout = "2006-01-02"

// CultureFormatter converts field values into attribute text for one
// culture. It implements tag.Formatter.
type CultureFormatter struct {
	printer   *message.Printer
	layout    string
	format    string
	invariant bool
}

// NewCultureFormatter builds a formatter. Format is a Go time layout for
// time values or a fmt verb string (containing '%') for everything else.
// Invariant formatters always use '.' decimals so number inputs can parse
// the result.
func NewCultureFormatter(culture, format string, invariant bool) *CultureFormatter {
	lang := language.Und
	if parsed, err := language.Parse(strings.TrimSpace(culture)); err == nil {
		lang = parsed
	}
	f := &CultureFormatter{
		printer:   message.NewPrinter(lang),
		layout:    DefaultTimeLayout,
		invariant: invariant,
	}
	format = strings.TrimSpace(format)
	if strings.Contains(format, "%") {
		f.format = format
	} else if format != "" {
		f.layout = format
	}
	return f
}

// Format implements tag.Formatter.
func (f *CultureFormatter) Format(value any) (string, bool) {
	value, ok := deref(value)
	if !ok {
		return "", true
	}

	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return "", true
		}
		return v.Format(f.layout), true
	case bool:
		return strconv.FormatBool(v), true
	}

	if f.format != "" {
		if f.invariant {
			return fmt.Sprintf(f.format, value), true
		}
		return f.printer.Sprintf(f.format, value), true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		if f.invariant {
			return strconv.FormatFloat(rv.Float(), 'f', -1, rv.Type().Bits()), true
		}
		digits := fractionDigits(rv.Float(), rv.Type().Bits())
		return f.printer.Sprint(number.Decimal(rv.Float(), number.NoSeparator(), number.MaxFractionDigits(digits))), true
	}
	return "", false
}

// fractionDigits counts the fraction digits of the shortest exact
// representation of v.
func fractionDigits(v float64, bits int) int {
	if _, frac, ok := strings.Cut(strconv.FormatFloat(v, 'f', -1, bits), "."); ok {
		return len(frac)
	}
	return 0
}

// deref follows pointers. It reports false for nil values.
func deref(value any) (any, bool) {
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	return rv.Interface(), true
}
