package npc

import (
	"errors"
	"log"
	"sort"

	"github.com/google/uuid"

	"justicemango/internal/model"
	"justicemango/internal/random"
)

var (
	ErrCapacityReached = errors.New("maximum NPC count reached")
	ErrNoPresets       = errors.New("no spawn presets registered")
	ErrUnknownPreset   = errors.New("unknown spawn preset")
)

const DefaultMaxNPCs = 10

// Spawner owns every live NPC and the preset table they are built from.
// It is not safe for concurrent use.
type Spawner struct {
	maxNPCs int
	active  []*NPC
	presets map[string]SpawnConfig
	rng     random.Source
	newID   func() string
	logger  *log.Logger
}

func NewSpawner(rng random.Source, logger *log.Logger) *Spawner {
	if logger == nil {
		logger = log.Default()
	}
	return &Spawner{
		maxNPCs: DefaultMaxNPCs,
		presets: map[string]SpawnConfig{},
		rng:     rng,
		newID:   uuid.NewString,
		logger:  logger,
	}
}

// SetIDGenerator replaces the instance id source (uuid by default).
func (s *Spawner) SetIDGenerator(fn func() string) {
	if fn != nil {
		s.newID = fn
	}
}

func (s *Spawner) SetMaxNPCs(max int) {
	if max < 0 {
		max = 0
	}
	s.maxNPCs = max
}

func (s *Spawner) MaxNPCs() int { return s.maxNPCs }

// AddPreset registers cfg under name. The spawner keeps its own normalized copy.
func (s *Spawner) AddPreset(name string, cfg SpawnConfig) {
	s.presets[name] = cfg.Clone().Normalize()
}

func (s *Spawner) Preset(name string) (SpawnConfig, bool) {
	cfg, ok := s.presets[name]
	return cfg.Clone(), ok
}

// Presets returns registered preset names in stable order.
func (s *Spawner) Presets() []string {
	out := make([]string, 0, len(s.presets))
	for name := range s.presets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Spawn creates a live NPC from cfg. It returns ErrCapacityReached, and
// creates nothing, once the active count has reached the maximum.
func (s *Spawner) Spawn(cfg SpawnConfig, now float64) (*NPC, error) {
	if len(s.active) >= s.maxNPCs {
		s.logger.Printf("[spawner] refused %s: %v (%d/%d)", cfg.NPCID, ErrCapacityReached, len(s.active), s.maxNPCs)
		return nil, ErrCapacityReached
	}
	n := New(s.newID(), cfg, s.rng, now)
	s.active = append(s.active, n)
	return n, nil
}

// SpawnPreset spawns a copy of the named preset at pos.
func (s *Spawner) SpawnPreset(name string, pos model.Vec2, now float64) (*NPC, error) {
	cfg, ok := s.Preset(name)
	if !ok {
		return nil, ErrUnknownPreset
	}
	cfg.Position = pos
	return s.Spawn(cfg, now)
}

// SpawnRandom spawns a copy of a uniformly chosen preset at pos.
func (s *Spawner) SpawnRandom(pos model.Vec2, now float64) (*NPC, error) {
	names := s.Presets()
	if len(names) == 0 {
		return nil, ErrNoPresets
	}
	return s.SpawnPreset(names[s.rng.Intn(len(names))], pos, now)
}

// Remove drops n from the active set. It reports whether n was active.
func (s *Spawner) Remove(n *NPC) bool {
	for i, a := range s.active {
		if a == n {
			s.active = append(s.active[:i], s.active[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Spawner) Get(instanceID string) (*NPC, bool) {
	for _, n := range s.active {
		if n.InstanceID == instanceID {
			return n, true
		}
	}
	return nil, false
}

func (s *Spawner) ActiveCount() int { return len(s.active) }

// Active returns a snapshot of the live NPCs. The slice is a copy; the
// NPCs are shared.
func (s *Spawner) Active() []*NPC {
	out := make([]*NPC, len(s.active))
	copy(out, s.active)
	return out
}

// Clear destroys every live NPC.
func (s *Spawner) Clear() {
	s.active = nil
}

// Update advances every live NPC.
func (s *Spawner) Update(now, dt float64) {
	for _, n := range s.active {
		n.Update(now, dt)
	}
}
