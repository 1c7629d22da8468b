package model

import (
	"fmt"
	"reflect"
	"strings"
)

// Pair is one parsed key/value entry.
type Pair struct {
	Key   string
	Value string
}

// Pairs is an insertion-ordered set of key/value entries with
// case-insensitive lookups.
type Pairs struct {
	items []Pair
	index map[string]int
}

// ParseKeyValuePairs parses "key1=value1|key2=value2|bare". A bare token maps
// to itself. Entries with more than one '=' fail with ErrMalformedOptions.
// A repeated key (compared case-insensitively) keeps its first position and
// takes the last value.
func ParseKeyValuePairs(raw string) (*Pairs, error) {
	pairs := &Pairs{index: make(map[string]int)}
	if strings.TrimSpace(raw) == "" {
		return pairs, nil
	}
	for _, entry := range strings.Split(raw, "|") {
		parts := strings.Split(strings.TrimSpace(entry), "=")
		var key, value string
		switch len(parts) {
		case 1:
			if parts[0] == "" {
				continue
			}
			key, value = parts[0], parts[0]
		case 2:
			key, value = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		default:
			return nil, fmt.Errorf("%w: entry %q", ErrMalformedOptions, strings.TrimSpace(entry))
		}
		pairs.set(key, value)
	}
	return pairs, nil
}

func (p *Pairs) set(key, value string) {
	folded := strings.ToLower(key)
	if idx, ok := p.index[folded]; ok {
		p.items[idx].Value = value
		return
	}
	p.index[folded] = len(p.items)
	p.items = append(p.items, Pair{Key: key, Value: value})
}

// Get returns the value for key, ignoring case.
func (p *Pairs) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	idx, ok := p.index[strings.ToLower(key)]
	if !ok {
		return "", false
	}
	return p.items[idx].Value, true
}

// Items returns the entries in insertion order.
func (p *Pairs) Items() []Pair {
	if p == nil {
		return nil
	}
	return append([]Pair(nil), p.items...)
}

// Len returns the number of entries.
func (p *Pairs) Len() int {
	if p == nil {
		return 0
	}
	return len(p.items)
}

// Map returns the entries as a map keyed by the original key spelling.
func (p *Pairs) Map() map[string]any {
	if p.Len() == 0 {
		return nil
	}
	out := make(map[string]any, len(p.items))
	for _, item := range p.items {
		out[item.Key] = item.Value
	}
	return out
}

// LabelFunc localizes an option label. It must return a non-empty string.
type LabelFunc func(key string) string

// ExtractOptions resolves the option list for select and radio fields. Other
// fields return nil. A Range over a registered enumeration takes precedence
// over the Options grammar. Unknown enumerations are reported through
// ErrUnknownEnum so callers can log and fall back.
func ExtractOptions(display Display, ann Annotations, enums *EnumRegistry, label LabelFunc) ([]SelectOption, error) {
	if !NeedsOptions(display) {
		return nil, nil
	}
	if label == nil {
		label = func(key string) string { return key }
	}

	if ann.Range != nil && strings.TrimSpace(ann.Range.Enum) != "" {
		enum, ok := enums.Lookup(ann.Range.Enum)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEnum, ann.Range.Enum)
		}
		values, err := enum.Between(ann.Range.Min, ann.Range.Max)
		if err != nil {
			return nil, err
		}
		options := make([]SelectOption, 0, len(values))
		for _, value := range values {
			options = append(options, SelectOption{ID: value, Label: label(value)})
		}
		return options, nil
	}

	pairs, err := ParseKeyValuePairs(display.Options)
	if err != nil {
		return nil, err
	}
	options := make([]SelectOption, 0, pairs.Len())
	promptSeen := false
	for _, pair := range pairs.Items() {
		opt := SelectOption{ID: pair.Key, Label: label(pair.Value)}
		if pair.Key == "" && !promptSeen {
			opt.IsPrompt = true
			promptSeen = true
		}
		options = append(options, opt)
	}
	return options, nil
}

// PromptID returns the id used for a synthesized prompt option: "0" for
// numeric targets, "" otherwise.
func PromptID(typ reflect.Type) string {
	if IsNumeric(typ) {
		return "0"
	}
	return ""
}
