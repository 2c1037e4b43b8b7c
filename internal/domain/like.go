package domain

import (
	"time"

	"github.com/google/uuid"
)

// Like records that a user liked a vacation. The (UserID, VacationID)
// pair is unique: liking twice never produces a second row.
type Like struct {
	ID         uuid.UUID `db:"id" json:"id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	VacationID uuid.UUID `db:"vacation_id" json:"vacation_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// LikedVacation is a liked vacation joined with its country, as returned
// by the own-likes listing.
type LikedVacation struct {
	LikeID      uuid.UUID `db:"like_id" json:"like_id"`
	LikedAt     time.Time `db:"liked_at" json:"liked_at"`
	ID          uuid.UUID `db:"id" json:"id"`
	CountryID   uuid.UUID `db:"country_id" json:"country_id"`
	CountryName string    `db:"country_name" json:"country_name"`
	CountryCode string    `db:"country_code" json:"country_code"`
	Destination string    `db:"destination" json:"destination"`
	StartDate   time.Time `db:"start_date" json:"start_date"`
	EndDate     time.Time `db:"end_date" json:"end_date"`
	Price       Money     `db:"price" json:"price"`
	ImageURL    *string   `db:"image_url" json:"image_url,omitempty"`
}

// Liker is a user who liked a vacation, for the admin view. No credential
// material is ever carried here.
type Liker struct {
	LikeID    uuid.UUID `db:"like_id" json:"like_id"`
	LikedAt   time.Time `db:"liked_at" json:"liked_at"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Email     string    `db:"email" json:"email"`
}
