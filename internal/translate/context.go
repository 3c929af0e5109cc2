package translate

import (
	"go.uber.org/zap"

	"cad-translator/internal/diagnostic"
	"cad-translator/internal/host"
	"cad-translator/internal/model"
	"cad-translator/internal/registry"
)

// Context is the state shared by all translators of one session: the host
// document, the internal model and the three correspondence registries.
type Context struct {
	Doc         host.Document
	Model       *model.Model
	Features    *registry.FeatureRegistry
	Geometry    *registry.GeometryRegistry
	Constraints *registry.ConstraintRegistry
	Log         *zap.Logger

	// ExposeInternalGeometry makes ellipse export add the auxiliary axis
	// and focus elements.
	ExposeInternalGeometry bool
	// StrictConstraints makes import fail on host constraints with no
	// internal counterpart. When false they are skipped and reported in
	// Diagnostics.
	StrictConstraints bool
	Diagnostics       diagnostic.Diagnostics
}

// NewContext returns a context with empty registries over doc and m.
func NewContext(doc host.Document, m *model.Model, log *zap.Logger) *Context {
	if log == nil {
		log = zap.NewNop()
	}

	return &Context{
		Doc:                    doc,
		Model:                  m,
		Features:               registry.NewFeatureRegistry(),
		Geometry:               registry.NewGeometryRegistry(),
		Constraints:            registry.NewConstraintRegistry(doc),
		Log:                    log,
		ExposeInternalGeometry: true,
		StrictConstraints:      true,
	}
}
