package actuator

import (
	"github.com/sarchlab/motionsim/geometry"
)

// Snapshot is the observable state of an actuator.
type Snapshot struct {
	Name      string           `json:"name"`
	NodeName  string           `json:"node_name"`
	Entity    string           `json:"entity"`
	Time      float64          `json:"time"`
	Position  float64          `json:"position"`
	Velocity  float64          `json:"velocity"`
	Goal      *Command         `json:"goal,omitempty"`
	WorldPose geometry.GeoPose `json:"world_pose"`
}

// Snapshot captures the current state.
func (c *Comp) Snapshot() Snapshot {
	c.Lock()
	defer c.Unlock()

	s := Snapshot{
		Name:      c.Name(),
		NodeName:  c.nodeName,
		Entity:    c.identity.String(),
		Time:      float64(c.CurrentTime()),
		Position:  c.position,
		Velocity:  c.velocity,
		WorldPose: geometry.ToPose(geometry.GeoBackend, c.worldTransform()),
	}

	if c.goal != nil {
		goal := *c.goal
		s.Goal = &goal
	}

	return s
}
