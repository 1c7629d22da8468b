package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	// ErrUnknownEnum is returned when a Range names an unregistered
	// enumeration.
	ErrUnknownEnum = errors.New("model: unknown enumeration")
	// ErrEnumBound is returned when a Range bound is not a value of the
	// enumeration.
	ErrEnumBound = errors.New("model: range bound not found in enumeration")
)

// Enum is a bounded, ordered set of named values.
type Enum struct {
	Name   string
	Values []string
}

// Between returns the values from min to max inclusive, in declaration order.
// Empty bounds are open. Bounds match case-insensitively.
func (e Enum) Between(min, max string) ([]string, error) {
	start, end := 0, len(e.Values)-1
	if min = strings.TrimSpace(min); min != "" {
		idx := e.indexOf(min)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s has no %q", ErrEnumBound, e.Name, min)
		}
		start = idx
	}
	if max = strings.TrimSpace(max); max != "" {
		idx := e.indexOf(max)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s has no %q", ErrEnumBound, e.Name, max)
		}
		end = idx
	}
	if start > end {
		return nil, nil
	}
	return append([]string(nil), e.Values[start:end+1]...), nil
}

func (e Enum) indexOf(value string) int {
	for i, v := range e.Values {
		if strings.EqualFold(v, value) {
			return i
		}
	}
	return -1
}

// EnumRegistry stores enumerations by case-insensitive name.
type EnumRegistry struct {
	mu    sync.RWMutex
	enums map[string]Enum
}

// NewEnumRegistry returns a registry preloaded with the weekday and month
// enumerations.
func NewEnumRegistry() *EnumRegistry {
	reg := &EnumRegistry{enums: make(map[string]Enum)}
	weekdays := make([]string, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		weekdays = append(weekdays, d.String())
	}
	months := make([]string, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, m.String())
	}
	reg.enums["weekday"] = Enum{Name: "weekday", Values: weekdays}
	reg.enums["month"] = Enum{Name: "month", Values: months}
	return reg
}

// Register adds or replaces an enumeration.
func (r *EnumRegistry) Register(enum Enum) error {
	name := strings.ToLower(strings.TrimSpace(enum.Name))
	if name == "" {
		return errors.New("model: enumeration name is required")
	}
	if len(enum.Values) == 0 {
		return fmt.Errorf("model: enumeration %q has no values", enum.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.enums == nil {
		r.enums = make(map[string]Enum)
	}
	r.enums[name] = Enum{Name: enum.Name, Values: append([]string(nil), enum.Values...)}
	return nil
}

// Lookup returns the enumeration registered under name.
func (r *EnumRegistry) Lookup(name string) (Enum, bool) {
	if r == nil {
		return Enum{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	enum, ok := r.enums[strings.ToLower(strings.TrimSpace(name))]
	return enum, ok
}

// Names lists registered enumerations in sorted order.
func (r *EnumRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.enums))
	for name := range r.enums {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
