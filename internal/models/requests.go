package models

// Request payloads accepted by the API. Inbound fields are camelCase
// (fromId, fromHandle) while persisted rows serialize snake_case; update
// payloads use pointers so "absent" and "zero" stay distinguishable and
// only supplied fields are ever written.

// DeviceCreate is the POST /devices payload.
type DeviceCreate struct {
	Name   string  `json:"name" validate:"required,min=2"`
	Type   string  `json:"type" validate:"required,oneof=hub switch router ap server"`
	IP     string  `json:"ip"`
	Status string  `json:"status" validate:"omitempty,oneof=up warn down"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// DeviceUpdate is the PATCH /devices/:id payload. All fields optional;
// at least one must be present.
type DeviceUpdate struct {
	Name   *string  `json:"name" validate:"omitempty,min=2"`
	Type   *string  `json:"type" validate:"omitempty,oneof=hub switch router ap server"`
	IP     *string  `json:"ip"`
	Status *string  `json:"status" validate:"omitempty,oneof=up warn down"`
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
}

// Empty reports whether no updatable field was supplied.
func (u *DeviceUpdate) Empty() bool {
	return u.Name == nil && u.Type == nil && u.IP == nil &&
		u.Status == nil && u.X == nil && u.Y == nil
}

// PositionUpdate is the PATCH /devices/:id/position payload. Unlike the
// other payloads it is decoded strictly: exactly these two fields.
type PositionUpdate struct {
	X *float64 `json:"x" validate:"required"`
	Y *float64 `json:"y" validate:"required"`
}

// LinkCreate is the POST /links payload.
type LinkCreate struct {
	FromID     uint   `json:"fromId" validate:"required"`
	ToID       uint   `json:"toId" validate:"required"`
	Status     string `json:"status" validate:"omitempty,oneof=up warn down"`
	Label      string `json:"label"`
	FromHandle string `json:"fromHandle"`
	ToHandle   string `json:"toHandle"`
}

// LinkUpdate is the PATCH /links/:id payload. All fields optional;
// at least one must be present.
type LinkUpdate struct {
	Status     *string `json:"status" validate:"omitempty,oneof=up warn down"`
	Label      *string `json:"label"`
	FromHandle *string `json:"fromHandle"`
	ToHandle   *string `json:"toHandle"`
}

// Empty reports whether no updatable field was supplied.
func (u *LinkUpdate) Empty() bool {
	return u.Status == nil && u.Label == nil && u.FromHandle == nil && u.ToHandle == nil
}
