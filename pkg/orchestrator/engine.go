package orchestrator

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-modelform/internal/logfields"
	internalmodel "github.com/goliatone/go-modelform/internal/model"
	"github.com/goliatone/go-modelform/pkg/model"
)

// Cache memoizes reflected accessors per model type. One cache can be shared
// by several engines.
type Cache = internalmodel.Cache

// NewCache returns an empty accessor cache.
func NewCache() *Cache {
	return internalmodel.NewCache()
}

// FormBuilder extracts the grouped descriptors of a model instance.
type FormBuilder interface {
	Build(instance any, culture string, base model.Defaults) (model.Form, error)
}

// Observer is notified of every control the engine renders.
type Observer interface {
	FieldRendered(modelName string, kind model.ControlKind)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(modelName string, kind model.ControlKind)

// FieldRendered implements Observer.
func (f ObserverFunc) FieldRendered(modelName string, kind model.ControlKind) {
	f(modelName, kind)
}

// Option customises the engine configuration.
type Option func(*Engine)

// WithLocalizer supplies the display string provider.
func WithLocalizer(localizer model.Localizer) Option {
	return func(e *Engine) {
		e.localizer = localizer
	}
}

// WithLogger overrides the logger. The default discards output.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCache injects the accessor cache.
func WithCache(cache *Cache) Option {
	return func(e *Engine) {
		e.cache = cache
	}
}

// WithEnums injects the enumeration registry used by Range metadata.
func WithEnums(enums *model.EnumRegistry) Option {
	return func(e *Engine) {
		e.enums = enums
	}
}

// WithOverlay registers a display overrider applied after struct metadata.
func WithOverlay(overrider model.DisplayOverrider) Option {
	return func(e *Engine) {
		e.overlay = overrider
	}
}

// WithObserver registers a render observer.
func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

// WithBuilder replaces the model builder. Localizer, cache, enum and overlay
// options are ignored when a builder is supplied.
func WithBuilder(builder FormBuilder) Option {
	return func(e *Engine) {
		e.builder = builder
	}
}

// Engine turns model instances into form markup. It is safe for concurrent
// use once constructed.
type Engine struct {
	builder   FormBuilder
	localizer model.Localizer
	cache     *Cache
	enums     *model.EnumRegistry
	overlay   model.DisplayOverrider
	observer  Observer
	logger    logrus.FieldLogger
}

// New constructs an Engine. Missing dependencies fall back to the built-in
// implementations.
func New(options ...Option) *Engine {
	e := &Engine{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.logger == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		e.logger = logger
	}
	e.logger = e.logger.WithField(logfields.LogSubsys, "orchestrator")
	if e.builder == nil {
		e.builder = internalmodel.New(internalmodel.Options{
			Localizer: e.localizer,
			Enums:     e.enums,
			Cache:     e.cache,
			Overrider: e.overlay,
		})
	}
	return e
}
