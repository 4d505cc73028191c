package agent

import (
	"slices"

	"github.com/lixenwraith/flowgrid/core"
)

// ID identifies an entity, 0 is never issued
type ID uint64

// Role selects how an entity participates in navigation
type Role uint8

const (
	RoleFollower Role = iota // Steers along the flow field
	RoleGoal                 // The tracked destination
)

// Direction is the 8-way facing of a sprite
type Direction uint8

const (
	FacingEast Direction = iota
	FacingNorthEast
	FacingNorth
	FacingNorthWest
	FacingWest
	FacingSouthWest
	FacingSouth
	FacingSouthEast
)

// Entity is a positioned actor
type Entity struct {
	ID     ID
	Role   Role
	Pos    core.WorldPos
	Speed  float64 // World pixels per second
	Facing Direction
}

// Registry stores entities keyed by ID
// Iteration is in ascending ID order so ticks are deterministic
type Registry struct {
	nextID   ID
	entities map[ID]*Entity
	order    []ID
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		nextID:   1,
		entities: make(map[ID]*Entity),
	}
}

// Spawn adds an entity and returns it with its assigned ID
func (r *Registry) Spawn(role Role, pos core.WorldPos, speed float64) *Entity {
	e := &Entity{ID: r.nextID, Role: role, Pos: pos, Speed: speed}
	r.nextID++
	r.entities[e.ID] = e
	r.order = append(r.order, e.ID)
	return e
}

// Despawn removes an entity
func (r *Registry) Despawn(id ID) bool {
	if _, ok := r.entities[id]; !ok {
		return false
	}
	delete(r.entities, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return true
}

// Get returns the entity with the given ID
func (r *Registry) Get(id ID) (*Entity, bool) {
	e, ok := r.entities[id]
	return e, ok
}

// Len returns the number of entities
func (r *Registry) Len() int {
	return len(r.order)
}

// Each visits entities with the given role in ID order
func (r *Registry) Each(role Role, fn func(e *Entity)) {
	for _, id := range r.order {
		if e := r.entities[id]; e.Role == role {
			fn(e)
		}
	}
}

// Count returns the number of entities with the given role
func (r *Registry) Count(role Role) int {
	n := 0
	r.Each(role, func(*Entity) { n++ })
	return n
}
