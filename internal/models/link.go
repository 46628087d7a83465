package models

import "time"

// Link is a directed connection between two devices. The handle columns
// identify the docking point on each endpoint, so two devices may be
// connected by several links as long as the handle pair differs — the
// composite unique index on (from_id, to_id, from_handle, to_handle)
// enforces exactly that. Handles are stored as '' rather than NULL so the
// index treats "no handle" as a comparable value.
//
// Deleting a device cascades to every link referencing it on either side.
type Link struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	FromID uint `gorm:"not null;index;uniqueIndex:idx_link_endpoints,priority:1" json:"from_id"`
	ToID   uint `gorm:"not null;index;uniqueIndex:idx_link_endpoints,priority:2" json:"to_id"`

	From *Device `gorm:"foreignKey:FromID;constraint:OnDelete:CASCADE" json:"-"`
	To   *Device `gorm:"foreignKey:ToID;constraint:OnDelete:CASCADE" json:"-"`

	Status Status `gorm:"size:10;not null;default:'up'" json:"status"`
	Label  string `json:"label,omitempty"`

	FromHandle string `gorm:"size:60;not null;default:'';uniqueIndex:idx_link_endpoints,priority:3" json:"from_handle,omitempty"`
	ToHandle   string `gorm:"size:60;not null;default:'';uniqueIndex:idx_link_endpoints,priority:4" json:"to_handle,omitempty"`
}
