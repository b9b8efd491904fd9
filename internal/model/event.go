// Package model defines the core domain types shared across the application.
package model

import (
	"time"
)

// DeviceType identifies the device an event originated from.
type DeviceType string

// Supported device types.
const (
	DeviceDesktop DeviceType = "desktop"
	DeviceTablet  DeviceType = "tablet"
	DeviceMobile  DeviceType = "mobile"
)

// Valid reports whether the device type is one of the supported values.
func (d DeviceType) Valid() bool {
	switch d {
	case DeviceDesktop, DeviceTablet, DeviceMobile:
		return true
	}
	return false
}

// ActionType identifies the kind of interaction an event records.
type ActionType string

// Supported action types.
const (
	ActionBorrow  ActionType = "borrow"
	ActionPreview ActionType = "preview"
	ActionReturn  ActionType = "return"
)

// Event represents a single cleaned interaction between a user and a book.
// Events are immutable once loaded; invalid rows are dropped during import.
type Event struct {
	BorrowedAt     time.Time
	ReturnedAt     *time.Time
	Rating         *int // 1-5 when present
	UserID         string
	BookID         string
	Device         DeviceType
	Action         ActionType
	SessionSeconds int
	Recommended    bool
}

// IsBorrow reports whether the event is an actual borrow action.
func (e Event) IsBorrow() bool {
	return e.Action == ActionBorrow
}

// Completed reports whether the borrow has a recorded return.
func (e Event) Completed() bool {
	return e.ReturnedAt != nil && !e.ReturnedAt.Before(e.BorrowedAt)
}
