// Package meetuperr defines the error taxonomy shared by the meetup
// services and the API layer. Infeasible meetups and missing routes are
// expected business outcomes and are always returned as typed values;
// unknown identities and collaborator failures are propagated.
package meetuperr

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrNotFound marks an unknown course, section or student identity.
	// This is a caller bug and is never swallowed.
	ErrNotFound = errors.New("not found")

	// ErrNoRoute is returned when a day has fewer than two sections, so
	// there are no pairs to route between.
	ErrNoRoute = errors.New("no route: need at least two sections")

	// ErrNoSections is returned when a day has no sections at all. Kept
	// distinct from ErrNoRoute so callers can tell "nothing to plot"
	// from "only one class".
	ErrNoSections = errors.New("no sections scheduled on this day")
)

// InfeasibleReason enumerates why a meetup cannot happen. Each reason
// maps to exactly one human-readable message.
type InfeasibleReason int

const (
	// NoPartner: there is no second student to meet.
	NoPartner InfeasibleReason = iota
	// SelfHasNoClasses: the requesting student has no sections that day,
	// so no anchor building exists on their side.
	SelfHasNoClasses
	// PartnerHasNoClasses: the partner has no sections that day.
	PartnerHasNoClasses
	// SelfNotFree: the requesting student has no qualifying free block.
	SelfNotFree
	// PartnerNotFree: the partner has no qualifying free block.
	PartnerNotFree
)

var infeasibleMessages = map[InfeasibleReason]string{
	NoPartner:           "no partner to meet: fetch a friend first",
	SelfHasNoClasses:    "you have no classes on this day, so there is no anchor location",
	PartnerHasNoClasses: "your friend has no classes on this day",
	SelfNotFree:         "you are not free at that time",
	PartnerNotFree:      "your friend is not free at that time",
}

// InfeasibleError reports a meetup that cannot happen. Terminal for the
// request; never retried.
type InfeasibleError struct {
	Reason InfeasibleReason
}

func (e *InfeasibleError) Error() string {
	if msg, ok := infeasibleMessages[e.Reason]; ok {
		return msg
	}
	return fmt.Sprintf("meetup infeasible (reason %d)", e.Reason)
}

// Infeasible creates an InfeasibleError with the given reason.
func Infeasible(reason InfeasibleReason) error {
	return &InfeasibleError{Reason: reason}
}

// AsInfeasible extracts an InfeasibleError from an error chain.
func AsInfeasible(err error) (*InfeasibleError, bool) {
	var ie *InfeasibleError
	ok := errors.As(err, &ie)
	return ie, ok
}

// ExternalError wraps a failure from one of the external collaborators
// (roster, place search, routing).
type ExternalError struct {
	Service string
	Err     error
}

func (e *ExternalError) Error() string {
	return fmt.Sprintf("%s service: %v", e.Service, e.Err)
}

func (e *ExternalError) Unwrap() error {
	return e.Err
}

// External wraps err as a collaborator failure.
func External(service string, err error) error {
	return &ExternalError{Service: service, Err: err}
}
