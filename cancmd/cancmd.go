// Package cancmd packs controller outputs into CAN frames addressed by
// entity handle.
package cancmd

import (
	"errors"
	"fmt"
	"math"

	"github.com/sarchlab/motionsim/entity"
	"github.com/sarchlab/motionsim/motion"
	"go.einride.tech/can"
)

var (
	// ErrNotHandle is returned when an identity cannot be used as a CAN ID.
	ErrNotHandle = errors.New("cancmd: identity is not a 29-bit handle")

	// ErrOutOfRange is returned when a velocity does not fit the payload.
	ErrOutOfRange = errors.New("cancmd: velocity out of range")

	// ErrBadFrame is returned when a frame is not a command frame.
	ErrBadFrame = errors.New("cancmd: not a command frame")
)

const (
	// VelocityResolution is the velocity of one payload bit, in m/s.
	VelocityResolution = 1e-5

	// FrameLength is the DLC of a command frame.
	FrameLength = 5

	maxExtendedID = 1<<29 - 1
)

// Encode packs a controller output for the entity with the given identity.
// Bits 0 to 31 hold the signed velocity and bits 32 to 39 the regime.
func Encode(id entity.Identity, cmd motion.Command) (can.Frame, error) {
	h, err := entity.AsHandle(id)
	if err != nil {
		return can.Frame{}, fmt.Errorf("%w: %v", ErrNotHandle, err)
	}

	if h > maxExtendedID {
		return can.Frame{}, fmt.Errorf("%w: %d", ErrNotHandle, h)
	}

	raw := math.Round(cmd.Velocity / VelocityResolution)
	if math.IsNaN(raw) || raw > math.MaxInt32 || raw < math.MinInt32 {
		return can.Frame{}, fmt.Errorf("%w: %g", ErrOutOfRange, cmd.Velocity)
	}

	if cmd.Regime < 0 || cmd.Regime > math.MaxUint8 {
		return can.Frame{}, fmt.Errorf("%w: regime %d", ErrBadFrame, cmd.Regime)
	}

	frame := can.Frame{
		ID:         uint32(h),
		Length:     FrameLength,
		IsExtended: true,
	}
	frame.Data.SetSignedBitsLittleEndian(0, 32, int64(raw))
	frame.Data.SetUnsignedBitsLittleEndian(32, 8, uint64(cmd.Regime))

	if err := frame.Validate(); err != nil {
		return can.Frame{}, err
	}

	return frame, nil
}

// Decode unpacks a command frame.
func Decode(frame can.Frame) (entity.Identity, motion.Command, error) {
	if !frame.IsExtended || frame.IsRemote || frame.Length != FrameLength {
		return nil, motion.Command{}, fmt.Errorf("%w: %s", ErrBadFrame, frame)
	}

	raw := frame.Data.SignedBitsLittleEndian(0, 32)
	regime := frame.Data.UnsignedBitsLittleEndian(32, 8)

	cmd := motion.Command{
		Velocity: float64(raw) * VelocityResolution,
		Regime:   motion.Regime(regime),
	}

	return entity.FromHandle(uint64(frame.ID)), cmd, nil
}
