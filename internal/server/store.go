package server

import (
	"errors"
	"strings"

	"github.com/villeh/netcanvas/internal/models"
	"gorm.io/gorm"
)

// Store is the topology repository: the only component that reads or
// writes the database. It owns the translation of store-level constraint
// violations into domain outcomes (ErrNotFound, ErrConflict,
// ErrInvalidReference) so driver error text never reaches a caller.
//
// The *gorm.DB handle is opened once at startup and shared by reference
// for the life of the process.
type Store struct {
	db *gorm.DB
}

// NewStore wraps an opened database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Ping reports whether the underlying database is reachable.
func (s *Store) Ping() bool {
	sqlDB, err := s.db.DB()
	if err != nil {
		return false
	}
	return sqlDB.Ping() == nil
}

// ── Devices ───────────────────────────────────────────────────────────────────

// Devices lists all devices in creation order.
func (s *Store) Devices() ([]models.Device, error) {
	var devices []models.Device
	err := s.db.Order("created_at").Find(&devices).Error
	return devices, err
}

// Device fetches one device by id.
func (s *Store) Device(id uint) (*models.Device, error) {
	var dev models.Device
	if err := s.db.First(&dev, id).Error; err != nil {
		return nil, translate(err)
	}
	return &dev, nil
}

// CreateDevice inserts a device; the store assigns id and created_at.
// Status defaults to "up", coordinates to 0.
func (s *Store) CreateDevice(in *models.DeviceCreate) (*models.Device, error) {
	dev := models.Device{
		Name:   in.Name,
		Type:   models.DeviceType(in.Type),
		IP:     in.IP,
		Status: models.StatusUp,
		X:      in.X,
		Y:      in.Y,
	}
	if in.Status != "" {
		dev.Status = models.Status(in.Status)
	}
	if err := s.db.Create(&dev).Error; err != nil {
		return nil, translate(err)
	}
	return &dev, nil
}

// deviceColumns builds the (column, value) set for a partial update from
// exactly the supplied fields. The allow-list is fixed; id and created_at
// are never updatable.
func deviceColumns(in *models.DeviceUpdate) map[string]any {
	cols := make(map[string]any)
	if in.Name != nil {
		cols["name"] = *in.Name
	}
	if in.Type != nil {
		cols["type"] = *in.Type
	}
	if in.IP != nil {
		cols["ip"] = *in.IP
	}
	if in.Status != nil {
		cols["status"] = *in.Status
	}
	if in.X != nil {
		cols["x"] = *in.X
	}
	if in.Y != nil {
		cols["y"] = *in.Y
	}
	return cols
}

// UpdateDevice applies a partial update and returns the full updated row.
// Untouched columns are never written, so concurrent partial updates to
// different fields do not clobber each other.
func (s *Store) UpdateDevice(id uint, in *models.DeviceUpdate) (*models.Device, error) {
	var dev models.Device
	if err := s.db.First(&dev, id).Error; err != nil {
		return nil, translate(err)
	}
	if err := s.db.Model(&dev).Updates(deviceColumns(in)).Error; err != nil {
		return nil, translate(err)
	}
	if err := s.db.First(&dev, id).Error; err != nil {
		return nil, translate(err)
	}
	return &dev, nil
}

// UpdateDevicePosition writes only the coordinate columns.
func (s *Store) UpdateDevicePosition(id uint, x, y float64) (*models.Device, error) {
	var dev models.Device
	if err := s.db.First(&dev, id).Error; err != nil {
		return nil, translate(err)
	}
	if err := s.db.Model(&dev).Updates(map[string]any{"x": x, "y": y}).Error; err != nil {
		return nil, translate(err)
	}
	if err := s.db.First(&dev, id).Error; err != nil {
		return nil, translate(err)
	}
	return &dev, nil
}

// DeleteDevice removes a device and every link referencing it on either
// side, in one transaction. The links table also declares ON DELETE
// CASCADE on both endpoint columns.
func (s *Store) DeleteDevice(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var dev models.Device
		if err := tx.First(&dev, id).Error; err != nil {
			return translate(err)
		}
		if err := tx.Where("from_id = ? OR to_id = ?", id, id).Delete(&models.Link{}).Error; err != nil {
			return translate(err)
		}
		return translate(tx.Delete(&dev).Error)
	})
}

// ── Links ─────────────────────────────────────────────────────────────────────

// Links lists all links in creation order.
func (s *Store) Links() ([]models.Link, error) {
	var links []models.Link
	err := s.db.Order("created_at").Find(&links).Error
	return links, err
}

// CreateLink inserts a link. Both endpoints must reference existing
// devices (self-links are permitted at this layer) and the
// (from, to, fromHandle, toHandle) tuple must be unused.
func (s *Store) CreateLink(in *models.LinkCreate) (*models.Link, error) {
	for _, id := range []uint{in.FromID, in.ToID} {
		var n int64
		if err := s.db.Model(&models.Device{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return nil, translate(err)
		}
		if n == 0 {
			return nil, ErrInvalidReference
		}
	}

	link := models.Link{
		FromID:     in.FromID,
		ToID:       in.ToID,
		Status:     models.StatusUp,
		Label:      in.Label,
		FromHandle: in.FromHandle,
		ToHandle:   in.ToHandle,
	}
	if in.Status != "" {
		link.Status = models.Status(in.Status)
	}
	if err := s.db.Create(&link).Error; err != nil {
		return nil, translate(err)
	}
	return &link, nil
}

// linkColumns is the fixed allow-list counterpart of deviceColumns.
func linkColumns(in *models.LinkUpdate) map[string]any {
	cols := make(map[string]any)
	if in.Status != nil {
		cols["status"] = *in.Status
	}
	if in.Label != nil {
		cols["label"] = *in.Label
	}
	if in.FromHandle != nil {
		cols["from_handle"] = *in.FromHandle
	}
	if in.ToHandle != nil {
		cols["to_handle"] = *in.ToHandle
	}
	return cols
}

// UpdateLink applies a partial update and returns the full updated row.
func (s *Store) UpdateLink(id uint, in *models.LinkUpdate) (*models.Link, error) {
	var link models.Link
	if err := s.db.First(&link, id).Error; err != nil {
		return nil, translate(err)
	}
	if err := s.db.Model(&link).Updates(linkColumns(in)).Error; err != nil {
		return nil, translate(err)
	}
	if err := s.db.First(&link, id).Error; err != nil {
		return nil, translate(err)
	}
	return &link, nil
}

// DeleteLink removes a link by id.
func (s *Store) DeleteLink(id uint) error {
	res := s.db.Delete(&models.Link{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// translate maps store errors onto the domain taxonomy. SQLite reports
// constraint violations in the error text; gorm additionally exposes
// ErrDuplicatedKey on drivers that detect it.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrInvalidReference
	case strings.Contains(err.Error(), "UNIQUE constraint"):
		return ErrConflict
	case strings.Contains(err.Error(), "FOREIGN KEY constraint"):
		return ErrInvalidReference
	}
	return err
}
