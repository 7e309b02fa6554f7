package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is implemented by anything with a stable identity
type Entity interface {
	GetID() uuid.UUID
}

// BaseEntity carries the identity and timestamp columns every persisted
// entity shares. Mutating methods on the owning type are responsible
// for bumping UpdatedAt.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity returns a BaseEntity with a fresh identity and both
// timestamps set to now
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetID returns the entity's identity
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}
