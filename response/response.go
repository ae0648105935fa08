// Package response builds the result messages actuators publish when a
// request changes state.
package response

import (
	"math"

	"github.com/sarchlab/motionsim/entity"
)

// Status is an opaque small integer whose meaning is defined by the protocol
// that carries the result.
type Status = uint8

// Status values used by the actuator request protocol.
const (
	StatusAcknowledged Status = 0
	StatusSuccess      Status = 1
	StatusFailed       Status = 2
)

// Time is a timestamp in the simulation clock domain.
type Time struct {
	Sec     int32  `json:"sec"`
	Nanosec uint32 `json:"nanosec"`
}

// SimulationNow converts simulated seconds into a Time. Times outside the
// range of Time saturate at its bounds.
func SimulationNow(t float64) Time {
	switch {
	case math.IsNaN(t):
		return Time{}
	case t >= math.MaxInt32+1:
		return Time{Sec: math.MaxInt32, Nanosec: 999999999}
	case t < math.MinInt32:
		return Time{Sec: math.MinInt32}
	}

	sec := math.Floor(t)
	nsec := math.Round((t - sec) * 1e9)

	if nsec >= 1e9 {
		if sec == math.MaxInt32 {
			return Time{Sec: math.MaxInt32, Nanosec: 999999999}
		}

		sec++
		nsec -= 1e9
	}

	return Time{Sec: int32(sec), Nanosec: uint32(nsec)}
}

// Seconds converts the timestamp back into simulated seconds.
func (t Time) Seconds() float64 {
	return float64(t.Sec) + float64(t.Nanosec)*1e-9
}

// Result is a message that MakeResponse can fill.
type Result interface {
	SetTime(t Time)
	SetRequestGUID(guid string)
	SetSourceGUID(guid string)
	SetStatus(status Status)
}

// ResultBase carries the fields shared by all result messages. Embed it to
// make a message a Result.
type ResultBase struct {
	Time        Time   `json:"time"`
	RequestGUID string `json:"request_guid"`
	SourceGUID  string `json:"source_guid"`
	Status      Status `json:"status"`
}

// SetTime sets the time stamp.
func (r *ResultBase) SetTime(t Time) { r.Time = t }

// SetRequestGUID sets the identifier of the request being answered.
func (r *ResultBase) SetRequestGUID(guid string) { r.RequestGUID = guid }

// SetSourceGUID sets the identifier of the answering node.
func (r *ResultBase) SetSourceGUID(guid string) { r.SourceGUID = guid }

// SetStatus sets the status.
func (r *ResultBase) SetStatus(status Status) { r.Status = status }

// MakeResponse creates a result message of type T stamped with the
// simulation time.
func MakeResponse[T any, PT interface {
	*T
	Result
}](
	status Status,
	simTime float64,
	requestGUID string,
	guid string,
) PT {
	rsp := PT(new(T))
	rsp.SetTime(SimulationNow(simTime))
	rsp.SetRequestGUID(requestGUID)
	rsp.SetSourceGUID(guid)
	rsp.SetStatus(status)

	return rsp
}

// MotionResult reports the outcome of a motion request to an actuator.
type MotionResult struct {
	ResultBase

	Entity   entity.Identity `json:"-"`
	EntityID string          `json:"entity"`
	Position float64         `json:"position"`
}
