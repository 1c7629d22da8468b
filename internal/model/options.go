package model

import (
	pkgmodel "github.com/goliatone/go-modelform/pkg/model"
)

// Options configures the behaviour of the Builder.
type Options struct {
	Labeler   func(string) string
	Localizer pkgmodel.Localizer
	Enums     *pkgmodel.EnumRegistry
	Cache     *Cache
	Overrider pkgmodel.DisplayOverrider
}

func defaultOptions() Options {
	return Options{
		Labeler: DefaultLabeler,
		Enums:   pkgmodel.NewEnumRegistry(),
		Cache:   NewCache(),
	}
}
