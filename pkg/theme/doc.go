// Package theme maps go-theme manifests onto render options so a registered
// theme can restyle generated forms without touching the models.
package theme
