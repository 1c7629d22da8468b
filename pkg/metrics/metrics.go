package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-modelform/pkg/model"
	"github.com/goliatone/go-modelform/pkg/orchestrator"
)

const (
	namespace = "modelform"

	LabelModel = "model"
	LabelKind  = "kind"
)

// Recorder counts rendered controls per model and control kind. It satisfies
// orchestrator.Observer.
type Recorder struct {
	ControlsRendered *prometheus.CounterVec
}

var _ orchestrator.Observer = (*Recorder)(nil)

// New creates a Recorder and registers its collectors with reg. A nil reg
// leaves the collectors unregistered.
func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		ControlsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "controls_rendered_total",
			Help:      "Number of form controls rendered",
		}, []string{LabelModel, LabelKind}),
	}
	if reg == nil {
		return r, nil
	}
	if err := reg.Register(r.ControlsRendered); err != nil {
		return nil, err
	}
	return r, nil
}

// MustNew is like New but panics on registration errors.
func MustNew(reg prometheus.Registerer) *Recorder {
	r, err := New(reg)
	if err != nil {
		panic(err)
	}
	return r
}

// FieldRendered implements orchestrator.Observer.
func (r *Recorder) FieldRendered(modelName string, kind model.ControlKind) {
	r.ControlsRendered.WithLabelValues(modelName, kind.String()).Inc()
}
