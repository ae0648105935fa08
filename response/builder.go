package response

import "github.com/sarchlab/motionsim/entity"

// Builder can build motion result messages.
type Builder struct {
	status      Status
	simTime     float64
	requestGUID string
	sourceGUID  string
	entity      entity.Identity
	position    float64
}

// MakeBuilder returns a Builder for a StatusAcknowledged result.
func MakeBuilder() Builder {
	return Builder{status: StatusAcknowledged}
}

// WithStatus sets the status of the result.
func (b Builder) WithStatus(status Status) Builder {
	b.status = status
	return b
}

// WithSimTime sets the simulated time the result is stamped with.
func (b Builder) WithSimTime(t float64) Builder {
	b.simTime = t
	return b
}

// WithRequestGUID sets the identifier of the request being answered.
func (b Builder) WithRequestGUID(guid string) Builder {
	b.requestGUID = guid
	return b
}

// WithSourceGUID sets the identifier of the answering node.
func (b Builder) WithSourceGUID(guid string) Builder {
	b.sourceGUID = guid
	return b
}

// WithEntity sets the entity the result is about.
func (b Builder) WithEntity(id entity.Identity) Builder {
	b.entity = id
	return b
}

// WithPosition sets the actuator position reported in the result.
func (b Builder) WithPosition(position float64) Builder {
	b.position = position
	return b
}

// Build creates the MotionResult.
func (b Builder) Build() *MotionResult {
	rsp := MakeResponse[MotionResult](
		b.status, b.simTime, b.requestGUID, b.sourceGUID)
	rsp.Entity = b.entity
	rsp.Position = b.position

	if b.entity != nil {
		rsp.EntityID = b.entity.String()
	}

	return rsp
}
