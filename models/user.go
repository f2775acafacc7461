package models

import "time"

// User is the client-side directory record. Authentication lives with the
// identity provider; only the fields the booking flows read are modeled.
type User struct {
	ID           string    `bson:"id" json:"id"`
	FullName     string    `bson:"fullName" json:"fullName"`
	Email        string    `bson:"email" json:"email"`
	ProfileImage string    `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	FCMToken     string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
