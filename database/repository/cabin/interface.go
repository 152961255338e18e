package cabinRepo

import "riverwood/models"

// CabinRepository defines methods for cabin and cabin-type data access.
type CabinRepository interface {
	// GetAll retrieves all cabins, sorted by name.
	GetAll() ([]models.Cabin, error)
	// GetByID retrieves a cabin by its unique ID.
	GetByID(id string) (*models.Cabin, error)
	// Create inserts a new cabin record.
	Create(cabin *models.Cabin) error
	// Update modifies an existing cabin record.
	Update(cabin *models.Cabin) error
	// Delete removes a cabin record by its ID.
	Delete(id string) error

	// GetAllTypes retrieves all cabin types.
	GetAllTypes() ([]models.CabinType, error)
	// GetTypeByID retrieves a cabin type by its unique ID.
	GetTypeByID(id string) (*models.CabinType, error)
	// CreateType inserts a new cabin type record.
	CreateType(ct *models.CabinType) error
	// UpdateType modifies an existing cabin type record.
	UpdateType(ct *models.CabinType) error
	// DeleteType removes a cabin type record by its ID.
	DeleteType(id string) error
}
