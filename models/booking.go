package models

import "time"

// BookingStatus enumerates the booking lifecycle states.
type BookingStatus string

const (
	BookingPending     BookingStatus = "pending"
	BookingConfirmed   BookingStatus = "confirmed"
	BookingInProgress  BookingStatus = "inProgress"
	BookingCompleted   BookingStatus = "completed"
	BookingCancelled   BookingStatus = "cancelled"
	BookingNoShow      BookingStatus = "noShow"
	BookingRescheduled BookingStatus = "rescheduled"
)

// IsTerminal reports whether no further lifecycle transition is allowed.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingCancelled || s == BookingNoShow
}

// PaymentState tracks settlement progress on a booking.
type PaymentState string

const (
	PaymentStatePending   PaymentState = "pending"
	PaymentStateCompleted PaymentState = "completed"
	PaymentStateFailed    PaymentState = "failed"
	PaymentStateRefunded  PaymentState = "refunded"
)

// Coordinates is a lat/lng pair for in-person sessions.
type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Booking represents a scheduled client-stylist engagement.
type Booking struct {
	ID          string   `bson:"id" json:"id"`
	StylistID   string   `bson:"stylistId" json:"stylistId"`
	ClientID    string   `bson:"clientId" json:"clientId"`
	ClientName  string   `bson:"clientName" json:"clientName"`   // denormalized at creation
	ClientImage string   `bson:"clientImage" json:"clientImage"` // denormalized at creation
	Date        string   `bson:"date" json:"date"`               // "2006-01-02"
	StartTime   string   `bson:"startTime" json:"startTime"`     // "HH:MM"
	EndTime     string   `bson:"endTime" json:"endTime"`         // "HH:MM"
	Services    []string `bson:"services" json:"services"`
	Price       int      `bson:"price" json:"price"`
	Duration    int      `bson:"duration" json:"duration"` // minutes

	IsOnlineSession bool         `bson:"isOnlineSession" json:"isOnlineSession"`
	Location        string       `bson:"location,omitempty" json:"location,omitempty"`
	Coordinates     *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	MeetingLink     string       `bson:"meetingLink,omitempty" json:"meetingLink,omitempty"`

	Status        BookingStatus `bson:"status" json:"status"`
	PaymentStatus PaymentState  `bson:"paymentStatus" json:"paymentStatus"`

	// OTP is issued once at creation and consumed exactly once when the
	// session starts. Validity is bounded by OtpExpiresAt rather than any
	// process-local state.
	OtpCode      string    `bson:"otpCode,omitempty" json:"-"`
	OtpExpiresAt time.Time `bson:"otpExpiresAt,omitempty" json:"-"`
	OtpConsumed  bool      `bson:"otpConsumed" json:"-"`

	Notes              string `bson:"notes,omitempty" json:"notes,omitempty"`
	CancellationReason string `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	RescheduleReason   string `bson:"rescheduleReason,omitempty" json:"rescheduleReason,omitempty"`

	Rating int    `bson:"rating,omitempty" json:"rating,omitempty"` // 1..5, only when completed
	Review string `bson:"review,omitempty" json:"review,omitempty"`

	IdempotencyKey string    `bson:"idempotencyKey,omitempty" json:"-"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// BookingCreate carries the client-supplied fields for a new booking.
type BookingCreate struct {
	StylistID       string       `json:"stylistId" binding:"required"`
	Date            string       `json:"date" binding:"required"`
	StartTime       string       `json:"startTime" binding:"required"`
	EndTime         string       `json:"endTime" binding:"required"`
	Services        []string     `json:"services" binding:"required"`
	Price           int          `json:"price" binding:"required"`
	Duration        int          `json:"duration" binding:"required"`
	IsOnlineSession bool         `json:"isOnlineSession"`
	Location        string       `json:"location,omitempty"`
	Notes           string       `json:"notes,omitempty"`
	Coordinates     *Coordinates `json:"coordinates,omitempty"`
	IdempotencyKey  string       `json:"idempotencyKey,omitempty"`
}

// BookingUpdate is a partial patch; nil fields are left untouched.
type BookingUpdate struct {
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Location  *string `json:"location,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// BookingFilter narrows booking list queries.
type BookingFilter struct {
	Status   BookingStatus
	DateFrom string
	DateTo   string
	Skip     int64
	Limit    int64
}
