// Package entity identifies the simulated object an actuator is bound to.
//
// The two simulation backends address objects differently. Ignition uses a
// numeric entity handle and Gazebo classic uses a model name. An Identity
// holds exactly one of the two; reading it as the other one fails.
package entity

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrWrongVariant is returned when an Identity is read as the variant it
// does not hold.
var ErrWrongVariant = errors.New("entity: identity holds a different variant")

// ErrNoIdentity is returned when a nil Identity is read.
var ErrNoIdentity = errors.New("entity: no identity")

// Backend names the simulation backend an Identity belongs to.
type Backend int

// Supported backends.
const (
	Ignition Backend = iota
	Gazebo
)

// String implements fmt.Stringer.
func (b Backend) String() string {
	switch b {
	case Ignition:
		return "Ignition"
	case Gazebo:
		return "Gazebo"
	default:
		return "Backend(" + strconv.Itoa(int(b)) + ")"
	}
}

// Identity is either a Handle or a Name. No other type can implement it.
type Identity interface {
	fmt.Stringer

	// Backend returns the backend the identity addresses.
	Backend() Backend

	isIdentity()
}

// Handle is a numeric entity handle used by the Ignition backend.
type Handle uint64

// Backend returns Ignition.
func (Handle) Backend() Backend { return Ignition }

func (h Handle) String() string {
	return "handle:" + strconv.FormatUint(uint64(h), 10)
}

func (Handle) isIdentity() {}

// Name is a model name used by the Gazebo classic backend.
type Name string

// Backend returns Gazebo.
func (Name) Backend() Backend { return Gazebo }

func (n Name) String() string {
	return "name:" + string(n)
}

func (Name) isIdentity() {}

// FromHandle creates an Identity that holds a numeric handle.
func FromHandle(h uint64) Identity {
	return Handle(h)
}

// FromName creates an Identity that holds a model name.
func FromName(n string) Identity {
	return Name(n)
}

// AsHandle returns the numeric handle held by id.
func AsHandle(id Identity) (uint64, error) {
	switch v := id.(type) {
	case Handle:
		return uint64(v), nil
	case nil:
		return 0, ErrNoIdentity
	default:
		return 0, fmt.Errorf("%w: %s identity does not hold a handle",
			ErrWrongVariant, id.Backend())
	}
}

// AsName returns the model name held by id.
func AsName(id Identity) (string, error) {
	switch v := id.(type) {
	case Name:
		return string(v), nil
	case nil:
		return "", ErrNoIdentity
	default:
		return "", fmt.Errorf("%w: %s identity does not hold a name",
			ErrWrongVariant, id.Backend())
	}
}

// Equal tells if two identities hold the same variant and payload.
func Equal(a, b Identity) bool {
	return a == b
}
