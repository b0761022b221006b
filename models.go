package darshan

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// User is the identity record owned by the backend. The client keeps a
// copy for the lifetime of an authenticated session.
type User struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Mobile string   `json:"mobile"`
	Role   UserRole `json:"role"`
}

// UnmarshalJSON accepts both "id" and the document style "_id" key.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := struct {
		*alias
		DocumentID string `json:"_id"`
	}{alias: (*alias)(u)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if u.ID == "" {
		u.ID = aux.DocumentID
	}
	return nil
}

// Clone returns a copy of the user, nil safe.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	if u == nil {
		return false
	}
	return u.Role.IsAdmin()
}

// Temple is a temple listing
type Temple struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Location    string   `json:"location,omitempty"`
	Deity       string   `json:"deity,omitempty"`
	Description string   `json:"description,omitempty"`
	Timings     string   `json:"timings,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// Service is a bookable temple service (puja, darshan slot, prasad...)
type Service struct {
	ID          string          `json:"id,omitempty"`
	TempleID    string          `json:"templeId,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Duration    string          `json:"duration,omitempty"`
}

// Testimonial is a devotee review shown on the landing page
type Testimonial struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Message  string `json:"message"`
	Rating   int    `json:"rating,omitempty"`
}

// SeasonalEvent is the single highlighted festival/event banner
type SeasonalEvent struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Active      bool       `json:"active"`
}

// BookingStatus is the lifecycle status reported by the backend
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is a service booking made by a user
type Booking struct {
	ID        string          `json:"id,omitempty"`
	UserID    string          `json:"userId,omitempty"`
	TempleID  string          `json:"templeId"`
	ServiceID string          `json:"serviceId"`
	Date      string          `json:"date"`
	Devotees  int             `json:"devotees,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Status    BookingStatus   `json:"status,omitempty"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
}

// Subscription is a recurring plan (e.g. monthly prasad delivery)
type Subscription struct {
	ID        string          `json:"id,omitempty"`
	UserID    string          `json:"userId,omitempty"`
	Plan      string          `json:"plan"`
	TempleID  string          `json:"templeId,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status,omitempty"`
	StartDate *time.Time      `json:"startDate,omitempty"`
	EndDate   *time.Time      `json:"endDate,omitempty"`
}
