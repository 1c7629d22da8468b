package timezones

import (
	"bufio"
	"embed"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-modelform/pkg/model"
)

// EnumName is the enumeration name used by Register, so fields can declare
// range:"timezone" or range:"timezone:Europe/Berlin..Europe/Paris".
const EnumName = "timezone"

//go:embed data/iana_timezones.txt
var data embed.FS

var loadDefault = sync.OnceValues(func() ([]string, error) {
	f, err := data.Open("data/iana_timezones.txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
})

// Default returns a copy of the embedded IANA zone identifiers, sorted.
func Default() ([]string, error) {
	zones, err := loadDefault()
	if err != nil {
		return nil, err
	}
	return append([]string(nil), zones...), nil
}

// Parse reads one identifier per line. Blank lines and # comments are
// skipped; duplicates are dropped and the result is sorted.
func Parse(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, errors.New("timezones: reader is nil")
	}
	seen := make(map[string]struct{})
	var zones []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		zones = append(zones, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	sort.Strings(zones)
	return zones, nil
}

// Register adds the embedded zones to reg under EnumName.
func Register(reg *model.EnumRegistry) error {
	if reg == nil {
		return errors.New("timezones: registry is nil")
	}
	zones, err := Default()
	if err != nil {
		return err
	}
	return reg.Register(model.Enum{Name: EnumName, Values: zones})
}

// Label turns "America/Argentina/Buenos_Aires" into
// "Buenos Aires (America/Argentina)".
func Label(zone string) string {
	area, city, ok := cutLast(zone, "/")
	city = strings.ReplaceAll(city, "_", " ")
	if !ok {
		return city
	}
	return city + " (" + area + ")"
}

// Options returns select options for zones, labelled with Label.
func Options(zones []string) []model.SelectOption {
	options := make([]model.SelectOption, 0, len(zones))
	for _, zone := range zones {
		options = append(options, model.SelectOption{ID: zone, Label: Label(zone)})
	}
	return options
}

func cutLast(s, sep string) (before, after string, found bool) {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return "", s, false
}
