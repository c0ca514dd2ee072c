package remote

import (
	"time"
)

// User maps a username to the id other collaborators share trips with.
type User struct {
	ID        string `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

// UserDocument holds one user's whole catalog as a JSON document.
type UserDocument struct {
	UserID    string `gorm:"primaryKey"`
	Catalog   []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// TripRecord stores one trip, keyed by its own id so collaborators can
// read it. Body is the trip JSON without the collaborator list, which
// lives in TripShare.
type TripRecord struct {
	ID          string `gorm:"primaryKey"`
	OwnerUserID string `gorm:"index;not null"`
	Body        []byte `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (TripRecord) TableName() string {
	return "trips"
}

// TripShare grants one collaborator access to one trip.
type TripShare struct {
	TripID string `gorm:"primaryKey"`
	UserID string `gorm:"primaryKey;index"`
}

// Models lists every table the store migrates.
func Models() []interface{} {
	return []interface{}{&User{}, &UserDocument{}, &TripRecord{}, &TripShare{}}
}
