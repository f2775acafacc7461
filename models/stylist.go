package models

import "time"

// StylistDocumentKind is the closed set of verification document types a
// stylist may attach to their profile.
type StylistDocumentKind string

const (
	DocIDProof        StylistDocumentKind = "idProof"
	DocCertification  StylistDocumentKind = "certification"
	DocBusinessLicens StylistDocumentKind = "businessLicense"
)

// StylistDocument is a tagged verification document with a fixed shape.
type StylistDocument struct {
	Kind       StylistDocumentKind `bson:"kind" json:"kind"`
	URL        string              `bson:"url" json:"url"`
	Verified   bool                `bson:"verified" json:"verified"`
	UploadedAt time.Time           `bson:"uploadedAt" json:"uploadedAt"`
}

// StylistService is one entry in a stylist's service catalog.
type StylistService struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Price    int    `bson:"price" json:"price"`
	Duration int    `bson:"duration" json:"duration"` // minutes
	Active   bool   `bson:"active" json:"active"`
}

// Stylist is the provider-side profile. Rating, ReviewCount and Price are
// derived values owned by their respective recompute paths.
type Stylist struct {
	ID          string            `bson:"id" json:"id"`
	FullName    string            `bson:"fullName" json:"fullName"`
	Email       string            `bson:"email" json:"email"`
	Phone       string            `bson:"phone,omitempty" json:"phone,omitempty"`
	Bio         string            `bson:"bio,omitempty" json:"bio,omitempty"`
	Services    []StylistService  `bson:"services" json:"services"`
	Documents   []StylistDocument `bson:"documents,omitempty" json:"documents,omitempty"`
	Price       int               `bson:"price" json:"price"` // min price over active services
	Rating      float64           `bson:"rating" json:"rating"`
	ReviewCount int               `bson:"reviewCount" json:"reviewCount"`
	FCMToken    string            `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt   time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ReviewCreate carries the fields for a new direct review.
type ReviewCreate struct {
	StylistID string `json:"stylistId" binding:"required"`
	ClientID  string `json:"clientId"`
	BookingID string `json:"bookingId,omitempty"`
	Rating    int    `json:"rating" binding:"required"`
	Text      string `json:"text,omitempty"`
}

// Review is the canonical review row; the stylist aggregate is derived from
// these rows alone.
type Review struct {
	ID        string    `bson:"id" json:"id"`
	StylistID string    `bson:"stylistId" json:"stylistId"`
	ClientID  string    `bson:"clientId" json:"clientId"`
	BookingID string    `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	Rating    int       `bson:"rating" json:"rating"` // 1..5
	Text      string    `bson:"text,omitempty" json:"text,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
