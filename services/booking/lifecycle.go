package booking

import (
	"fmt"
	"time"

	"toolshare/models"
	"toolshare/utils"
)

// Event is something that may move a booking to another status.
type Event string

const (
	EventApprove  Event = "approve"
	EventDecline  Event = "decline"
	EventCancel   Event = "cancel"
	EventActivate Event = "activate"
	EventReturn   Event = "return"
)

// ActorRole is the relation of the caller to the booking.
type ActorRole string

const (
	ActorNone   ActorRole = ""
	ActorOwner  ActorRole = "owner"
	ActorRenter ActorRole = "renter"
	ActorSystem ActorRole = "system"
)

// transitions is the complete state machine. Anything absent is rejected.
var transitions = map[models.BookingStatus]map[Event]models.BookingStatus{
	models.StatusPending: {
		EventApprove: models.StatusApproved,
		EventDecline: models.StatusDeclined,
		EventCancel:  models.StatusCancelled,
	},
	models.StatusApproved: {
		EventCancel:   models.StatusCancelled,
		EventActivate: models.StatusActive,
	},
	models.StatusActive: {
		EventReturn: models.StatusCompleted,
	},
}

// eventActors lists who may fire each event.
var eventActors = map[Event][]ActorRole{
	EventApprove:  {ActorOwner},
	EventDecline:  {ActorOwner},
	EventCancel:   {ActorOwner, ActorRenter},
	EventActivate: {ActorSystem},
	EventReturn:   {ActorOwner},
}

// RoleOf returns the caller's role on b, or ActorNone for outsiders.
func RoleOf(b *models.Booking, userID string) ActorRole {
	switch {
	case userID == "":
		return ActorNone
	case userID == b.OwnerID:
		return ActorOwner
	case userID == b.RenterID:
		return ActorRenter
	}
	return ActorNone
}

// Next returns the status reached by firing ev from status.
func Next(status models.BookingStatus, ev Event) (models.BookingStatus, bool) {
	to, ok := transitions[status][ev]
	return to, ok
}

// CanFire reports whether role is allowed to fire ev at all.
func CanFire(role ActorRole, ev Event) bool {
	for _, allowed := range eventActors[ev] {
		if allowed == role {
			return true
		}
	}
	return false
}

// Apply fires ev on b as role, recording actorID in the history.
// The actor is checked before the state so an outsider learns nothing about the status.
// On error b is left untouched.
func Apply(b *models.Booking, ev Event, role ActorRole, actorID string, at time.Time) error {
	if !CanFire(role, ev) {
		return utils.NewAuthorizationError(fmt.Sprintf("Not authorized to %s this booking", ev))
	}
	to, ok := Next(b.Status, ev)
	if !ok {
		return utils.NewConflictError(fmt.Sprintf("Cannot %s a booking that is %s", ev, b.Status))
	}
	b.History = append(b.History, models.StatusChange{
		From:    b.Status,
		To:      to,
		Event:   string(ev),
		ActorID: actorID,
		At:      at,
	})
	b.Status = to
	return nil
}
