package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// neutralCulture names the resource file used when no culture matches.
const neutralCulture = "default"

// ErrInvalidCulture is returned when a resource file name is not a BCP 47 tag.
var ErrInvalidCulture = errors.New("i18n: invalid culture")

// Resources stores display strings per culture and implements
// model.Localizer.
type Resources struct {
	mu       sync.RWMutex
	cultures map[string]map[string]string
	tags     []language.Tag
	matcher  language.Matcher
}

// New returns an empty resource set.
func New() *Resources {
	return &Resources{cultures: make(map[string]map[string]string)}
}

// Add merges entries for culture. Use "default" (or "") for neutral strings
// consulted when the requested culture has no entry.
func (r *Resources) Add(culture string, entries map[string]string) error {
	key, tag, err := canonical(culture)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, ok := r.cultures[key]
	if !ok {
		bucket = make(map[string]string, len(entries))
		r.cultures[key] = bucket
		if key != neutralCulture {
			r.tags = append(r.tags, tag)
			r.matcher = language.NewMatcher(r.tags)
		}
	}
	for k, v := range entries {
		if k = strings.TrimSpace(k); k != "" {
			bucket[k] = v
		}
	}
	return nil
}

// DisplayString returns the entry for key in the best matching culture, then
// in the neutral culture. It returns "" when neither has an entry.
func (r *Resources) DisplayString(key, culture string) string {
	if r == nil {
		return ""
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if bucket := r.match(culture); bucket != nil {
		if value, ok := bucket[key]; ok {
			return value
		}
	}
	if value, ok := r.cultures[neutralCulture][key]; ok {
		return value
	}
	return ""
}

func (r *Resources) match(culture string) map[string]string {
	culture = strings.TrimSpace(culture)
	if culture == "" || r.matcher == nil {
		return nil
	}
	requested, err := language.Parse(culture)
	if err != nil {
		return nil
	}
	_, index, confidence := r.matcher.Match(requested)
	if confidence == language.No || index < 0 || index >= len(r.tags) {
		return nil
	}
	return r.cultures[r.tags[index].String()]
}

// Cultures lists the loaded cultures in sorted order.
func (r *Resources) Cultures() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.cultures))
	for culture := range r.cultures {
		out = append(out, culture)
	}
	sort.Strings(out)
	return out
}

// LoadFS walks fsys and loads every <culture>.json, .yaml or .yml file. Each
// file holds a flat map of keys to display strings.
func LoadFS(fsys fs.FS) (*Resources, error) {
	res := New()
	if fsys == nil {
		return res, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isResourceFile(p) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", p, err)
		}
		entries, err := parseResource(data, p)
		if err != nil {
			return err
		}
		culture := strings.TrimSuffix(path.Base(p), path.Ext(p))
		if err := res.Add(culture, entries); err != nil {
			return fmt.Errorf("i18n: file %s: %w", p, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func parseResource(data []byte, source string) (map[string]string, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("i18n: file %s is empty", source)
	}
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err == nil {
		return entries, nil
	}
	if err := yaml.Unmarshal(data, &entries); err == nil {
		return entries, nil
	}
	return nil, fmt.Errorf("i18n: parse %s: invalid JSON or YAML", source)
}

func isResourceFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func canonical(culture string) (string, language.Tag, error) {
	culture = strings.TrimSpace(culture)
	if culture == "" || strings.EqualFold(culture, neutralCulture) {
		return neutralCulture, language.Und, nil
	}
	tag, err := language.Parse(culture)
	if err != nil {
		return "", language.Und, fmt.Errorf("%w %q: %v", ErrInvalidCulture, culture, err)
	}
	return tag.String(), tag, nil
}
