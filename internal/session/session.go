package session

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"cad-translator/internal/diagnostic"
	"cad-translator/internal/host"
	"cad-translator/internal/ident"
	"cad-translator/internal/model"
	"cad-translator/internal/registry"
	"cad-translator/internal/translate"
)

const tracerName = "cad-translator/session"

// Session binds one host document to one internal model.
type Session struct {
	cfg    Config
	log    *zap.Logger
	tracer trace.Tracer
	tc     *translate.Context
}

// New returns a session over doc and m with empty registries.
func New(doc host.Document, m *model.Model, opts ...Option) *Session {
	s := &Session{
		cfg:    DefaultConfig(),
		log:    zap.NewNop(),
		tracer: otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(s)
	}

	if m == nil {
		m = model.New()
	}

	s.tc = translate.NewContext(doc, m, s.log)
	s.tc.StrictConstraints = s.cfg.StrictConstraints
	s.tc.ExposeInternalGeometry = s.cfg.ExposeInternalGeometry

	return s
}

// Config returns the session configuration.
func (s *Session) Config() Config { return s.cfg }

// Document returns the host document.
func (s *Session) Document() host.Document { return s.tc.Doc }

// Model returns the internal model.
func (s *Session) Model() *model.Model { return s.tc.Model }

// Diagnostics returns what non-strict import skipped.
func (s *Session) Diagnostics() diagnostic.Diagnostics { return s.tc.Diagnostics }

func (s *Session) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}

// AddFeature exports f with everything it contains and links it. The
// features f depends on must already be exported.
func (s *Session) AddFeature(ctx context.Context, f model.Feature) (id ident.FeatureID, err error) {
	_, span := s.start(ctx, "session.AddFeature",
		attribute.String("feature", f.Label()),
		attribute.String("kind", f.Kind().String()))
	defer func() { finish(span, err) }()

	id, err = s.tc.ExportFeature(f)
	if err != nil {
		return id, fmt.Errorf("add feature %q: %w", f.Label(), err)
	}

	span.SetAttributes(attribute.Int("host.id", int(id)))

	return id, nil
}

func (s *Session) sketchID(sketch *model.Sketch) (ident.FeatureID, error) {
	id, err := s.tc.Features.FeatureID(sketch)
	if err != nil {
		return 0, fmt.Errorf("sketch %q: %w", sketch.Name, err)
	}

	return id, nil
}

// AddGeometry appends g to an exported sketch on both sides.
func (s *Session) AddGeometry(ctx context.Context, sketch *model.Sketch, g model.Geometry) (id ident.SketchElementID, err error) {
	_, span := s.start(ctx, "session.AddGeometry", attribute.String("kind", g.Kind().String()))
	defer func() { finish(span, err) }()

	sid, err := s.sketchID(sketch)
	if err != nil {
		return id, err
	}

	id, err = s.tc.ExportGeometry(sid, g)
	if err != nil {
		return id, err
	}

	sketch.AddGeometry(g)

	return id, nil
}

// AddConstraint appends c to an exported sketch on both sides.
func (s *Session) AddConstraint(ctx context.Context, sketch *model.Sketch, c model.Constraint) (id ident.ConstraintID, err error) {
	_, span := s.start(ctx, "session.AddConstraint", attribute.String("kind", c.Kind().String()))
	defer func() { finish(span, err) }()

	sid, err := s.sketchID(sketch)
	if err != nil {
		return id, err
	}

	id, err = s.tc.ExportConstraint(sid, c)
	if err != nil {
		return id, err
	}

	sketch.AddConstraint(c)

	return id, nil
}

// Export translates every feature of the model that is not linked yet, in
// dependency order.
func (s *Session) Export(ctx context.Context) (err error) {
	ctx, span := s.start(ctx, "session.Export")
	defer func() { finish(span, err) }()

	features, err := featureOrder(s.tc.Model)
	if err != nil {
		return err
	}

	exported := 0

	for _, f := range features {
		if _, err := s.tc.Features.FeatureID(f); err == nil {
			continue
		}

		if _, err := s.AddFeature(ctx, f); err != nil {
			return err
		}

		exported++
	}

	span.SetAttributes(attribute.Int("features", exported))
	s.log.Info("exported model", zap.Int("features", exported))

	return nil
}

// Import translates every host object of the document into the model.
// Objects outside any body become top-level features.
func (s *Session) Import(ctx context.Context) (err error) {
	_, span := s.start(ctx, "session.Import")
	defer func() { finish(span, err) }()

	objects, err := hostOrder(s.tc.Doc)
	if err != nil {
		return err
	}

	for _, obj := range objects {
		f, err := s.tc.ImportFeature(obj.ID)
		if err != nil {
			return fmt.Errorf("import %s (%s): %w", obj.Name, obj.Type, err)
		}

		if obj.Parent == 0 {
			s.tc.Model.Add(f)
		}
	}

	span.SetAttributes(
		attribute.Int("features", len(objects)),
		attribute.Int("warnings", len(s.tc.Diagnostics.Warnings)))
	s.log.Info("imported document",
		zap.Int("features", len(objects)),
		zap.Int("warnings", len(s.tc.Diagnostics.Warnings)))

	return nil
}

// FeatureID returns the host object of f.
func (s *Session) FeatureID(f model.Feature) (ident.FeatureID, error) {
	return s.tc.Features.FeatureID(f)
}

// HostID returns the host id e exposes at ref. e is a feature, a sketch
// geometry or a constraint; constraints only have CORE.
func (s *Session) HostID(e model.Entity, ref model.ConstraintReference) (ident.HostID, error) {
	switch e := e.(type) {
	case model.Feature:
		return s.tc.Features.HostID(e, ref)
	case model.Geometry:
		return s.tc.Geometry.HostID(e, ref)
	default:
		return nil, diagnostic.TypeMismatch("session host lookup", fmt.Sprintf("%T", e))
	}
}

// ConstraintID returns the host constraint of c.
func (s *Session) ConstraintID(c model.Constraint) (ident.ConstraintID, error) {
	return s.tc.Constraints.HostID(c)
}

// Internal returns the entity and reference a host id stands for.
func (s *Session) Internal(id ident.HostID) (model.Entity, model.ConstraintReference, error) {
	switch id := id.(type) {
	case ident.FeatureID, ident.SubFeatureID:
		return s.tc.Features.Internal(id)
	case ident.SubGeometryID:
		if id.Element.List == ident.ListExternal {
			return s.tc.Features.Internal(id)
		}

		return s.tc.Geometry.Internal(id)
	case ident.SketchElementID:
		return s.tc.Geometry.InternalElement(id)
	default:
		return nil, model.ReferenceCore, diagnostic.TypeMismatch("session internal lookup", fmt.Sprintf("%T", id))
	}
}

// Constraint returns the internal constraint of a host constraint.
func (s *Session) Constraint(id ident.ConstraintID) (model.Constraint, error) {
	return s.tc.Constraints.Internal(id)
}

// Correspondences lists every linked feature with its sub-reference table.
func (s *Session) Correspondences() []registry.Linked {
	return s.tc.Features.Entries()
}

// GeometryReferences returns the references linked on a host sketch element.
func (s *Session) GeometryReferences(id ident.SketchElementID) ([]model.ConstraintReference, error) {
	return s.tc.Geometry.References(id)
}
