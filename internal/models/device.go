// Package models defines GORM data models for NetCanvas.
package models

import "time"

// DeviceType classifies a piece of network equipment on the canvas.
type DeviceType string

const (
	DeviceHub    DeviceType = "hub"
	DeviceSwitch DeviceType = "switch"
	DeviceRouter DeviceType = "router"
	DeviceAP     DeviceType = "ap"
	DeviceServer DeviceType = "server"
)

// Valid reports whether t is one of the known device types.
func (t DeviceType) Valid() bool {
	switch t {
	case DeviceHub, DeviceSwitch, DeviceRouter, DeviceAP, DeviceServer:
		return true
	}
	return false
}

// Status is the operational state shared by devices and links.
type Status string

const (
	StatusUp   Status = "up"
	StatusWarn Status = "warn"
	StatusDown Status = "down"
)

// Valid reports whether s is one of the three allowed states.
func (s Status) Valid() bool {
	return s == StatusUp || s == StatusWarn || s == StatusDown
}

// Device is a network-equipment record positioned on the canvas.
// ID and CreatedAt are assigned by the store on insert and never change;
// listings are always ordered by CreatedAt so insertion order is stable.
type Device struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Name string     `gorm:"size:120;not null" json:"name"`
	Type DeviceType `gorm:"size:20;not null" json:"type"`
	// IP is free text; no format validation is enforced.
	IP     string `json:"ip"`
	Status Status `gorm:"size:10;not null;default:'up'" json:"status"`

	// Canvas coordinates.
	X float64 `gorm:"not null;default:0" json:"x"`
	Y float64 `gorm:"not null;default:0" json:"y"`
}
