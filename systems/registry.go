package systems

import "github.com/pthm-cable/morph/telemetry"

// SystemInfo describes a per-frame system for perf tracking and the HUD.
type SystemInfo struct {
	ID          string // Internal identifier (used as the perf phase name)
	Name        string // Display name
	Description string // What this system does
}

// System IDs. These double as perf phase names.
const (
	SystemGesture = telemetry.PhaseGesture
	SystemMorph   = telemetry.PhaseMorph
	SystemSpin    = telemetry.PhaseSpin
	SystemStats   = telemetry.PhaseStats
	SystemDraw    = telemetry.PhaseDraw
)

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems in frame order.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: SystemGesture, Name: "Gesture", Description: "Reads the latest hand signal"})
	r.Register(SystemInfo{ID: SystemMorph, Name: "Morph", Description: "Retargets and advances particle fields"})
	r.Register(SystemInfo{ID: SystemSpin, Name: "Spin", Description: "Rotates clouds about the vertical axis"})
	r.Register(SystemInfo{ID: SystemStats, Name: "Stats", Description: "Samples convergence statistics"})
	r.Register(SystemInfo{ID: SystemDraw, Name: "Draw", Description: "Uploads and draws particle points"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
