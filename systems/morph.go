package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/morph/components"
	"github.com/pthm-cable/morph/gesture"
)

// FieldFactory builds the field for a newly seen cloud.
type FieldFactory func(c components.Cloud) *Field

// MorphSystem drives every cloud's particle field: it applies requested
// count and shape changes, then advances the field one tick.
type MorphSystem struct {
	filter  ecs.Filter1[components.Cloud]
	fields  map[uint32]*Field
	factory FieldFactory
}

// NewMorphSystem creates a morph system over w.
func NewMorphSystem(w *ecs.World, factory FieldFactory) *MorphSystem {
	return &MorphSystem{
		filter:  *ecs.NewFilter1[components.Cloud](w),
		fields:  make(map[uint32]*Field),
		factory: factory,
	}
}

// Update runs one frame for all clouds and returns how many fields
// regenerated their targets.
func (s *MorphSystem) Update(g gesture.Signal, elapsed float64) int {
	regens := 0
	query := s.filter.Query()
	for query.Next() {
		cloud := query.Get()

		f, ok := s.fields[cloud.ID]
		if !ok {
			f = s.factory(*cloud)
			s.fields[cloud.ID] = f
		}

		// Reconfiguration first so the shape edge sees the new buffers
		if f.SetParticleCount(cloud.Count) {
			regens++
		}
		if f.SetShape(cloud.Shape) {
			regens++
		}
		f.Tick(g, elapsed)
	}
	return regens
}

// Field returns the field of cloud id, or nil before its first update.
func (s *MorphSystem) Field(id uint32) *Field {
	return s.fields[id]
}

// Forget drops the field of a removed cloud.
func (s *MorphSystem) Forget(id uint32) {
	delete(s.fields, id)
}

// SpinSystem turns clouds about the vertical axis.
type SpinSystem struct {
	filter ecs.Filter1[components.Spin]
}

// NewSpinSystem creates a spin system over w.
func NewSpinSystem(w *ecs.World) *SpinSystem {
	return &SpinSystem{
		filter: *ecs.NewFilter1[components.Spin](w),
	}
}

// Update advances every spin by its per-frame rate.
func (s *SpinSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		spin := query.Get()
		spin.Angle = normalizeAngle(spin.Angle + spin.Rate)
	}
}
