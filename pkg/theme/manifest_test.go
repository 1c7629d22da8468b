package theme

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-modelform/pkg/render"
)

func TestLoadManifest_YAML(t *testing.T) {
	fsys := fstest.MapFS{
		"themes/acme.yaml": {Data: []byte(`
name: acme
version: "1.0.0"
tokens:
  form.input-class: acme-input
  form.row-class: acme-row
variants:
  compact:
    form.input-class: acme-input-sm
`)},
	}

	manifest, err := LoadManifest(fsys, "themes/acme.yaml")
	require.NoError(t, err)
	require.Equal(t, "acme", manifest.Name)
	require.Equal(t, "acme-input-sm", manifest.Variants["compact"].Tokens[TokenInputClass])

	opts := render.Default()
	require.NoError(t, Apply(Static(manifest), "", "compact", opts))
	require.Equal(t, "acme-input-sm", opts.DefaultCSSClass)
	require.Equal(t, "acme-row", opts.RowCSSClass)
}

func TestParseManifest_JSON(t *testing.T) {
	manifest, err := ParseManifest([]byte(`{"name":"mono","tokens":{"form.column-class":"col-md-6"}}`), "mono.json")
	require.NoError(t, err)
	require.Equal(t, "col-md-6", manifest.Tokens[TokenColumnClass])
	require.Empty(t, manifest.Variants)
}

func TestParseManifest_Errors(t *testing.T) {
	_, err := ParseManifest([]byte(`{"tokens":{}}`), "anon.json")
	require.Error(t, err)

	_, err = ParseManifest([]byte("name: [unterminated"), "bad.yaml")
	require.Error(t, err)

	_, err = LoadManifest(fstest.MapFS{}, "missing.json")
	require.Error(t, err)

	_, err = LoadManifest(nil, "x.json")
	require.Error(t, err)
}
