package theme

import (
	"errors"
	"fmt"
	"strings"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-modelform/pkg/render"
)

// Token keys read from a theme manifest.
const (
	TokenInputClass      = "form.input-class"
	TokenRowClass        = "form.row-class"
	TokenColumnClass     = "form.column-class"
	TokenGroupWrapperTag = "form.group-wrapper"
	TokenGroupHeaderTag  = "form.group-header"
)

var (
	// ErrNoSelector is returned when Apply is called without a selector.
	ErrNoSelector = errors.New("theme: selector is nil")
	// ErrNoManifest is returned when the selector resolves an empty selection.
	ErrNoManifest = errors.New("theme: selection has no manifest")
)

// Static returns a selector that always resolves to manifest. The requested
// variant is kept so variant tokens still apply.
func Static(manifest *gotheme.Manifest) gotheme.ThemeSelector {
	return staticSelector{manifest: manifest}
}

type staticSelector struct {
	manifest *gotheme.Manifest
}

func (s staticSelector) Select(_, variant string, _ ...gotheme.QueryOption) (*gotheme.Selection, error) {
	if s.manifest == nil {
		return nil, ErrNoManifest
	}
	return &gotheme.Selection{Theme: s.manifest.Name, Variant: variant, Manifest: s.manifest}, nil
}

// Tokens resolves the manifest tokens for a selection with the variant tokens
// layered over the base ones.
func Tokens(selection *gotheme.Selection) map[string]string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest
	out := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		out[key] = value
	}
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			out[key] = value
		}
	}
	return out
}

// Apply selects name/variant and copies the form tokens of the selection into
// opts. Tokens that are missing or blank leave opts untouched.
func Apply(selector gotheme.ThemeSelector, name, variant string, opts *render.Options) error {
	if selector == nil {
		return ErrNoSelector
	}
	if opts == nil {
		return errors.New("theme: options are nil")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return fmt.Errorf("theme: select %s/%s: %w", name, variant, err)
	}
	if selection == nil || selection.Manifest == nil {
		return ErrNoManifest
	}
	ApplyTokens(Tokens(selection), opts)
	return nil
}

// ApplyTokens copies recognised form tokens into opts.
func ApplyTokens(tokens map[string]string, opts *render.Options) {
	if opts == nil {
		return
	}
	set := func(key string, target *string) {
		if value := strings.TrimSpace(tokens[key]); value != "" {
			*target = value
		}
	}
	set(TokenInputClass, &opts.DefaultCSSClass)
	set(TokenRowClass, &opts.RowCSSClass)
	set(TokenColumnClass, &opts.ColumnCSSClass)
	set(TokenGroupWrapperTag, &opts.GroupWrapperTag)
	set(TokenGroupHeaderTag, &opts.GroupHeaderTag)
}
