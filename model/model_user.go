package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID           bson.ObjectID `json:"id"        bson:"_id,omitempty"`
	FirstName    string        `json:"firstName" bson:"first_name"`
	LastName     string        `json:"lastName"  bson:"last_name"`
	Username     string        `json:"username"  bson:"username"`
	Email        string        `json:"email"     bson:"email"`
	PasswordHash string        `json:"-"         bson:"password_hash"`
	Role         string        `json:"role"      bson:"role"`
	Bio          string        `json:"bio,omitempty"    bson:"bio,omitempty"`
	Avatar       string        `json:"avatar,omitempty" bson:"avatar,omitempty"`
	CreatedAt    time.Time     `json:"createdAt" bson:"created_at"`
}

// UsernameClaim reserves a normalized username. The document id is the
// username itself so the unique _id index is the uniqueness constraint;
// it is written in the same transaction as the user document.
type UsernameClaim struct {
	Username string        `bson:"_id"`
	UserID   bson.ObjectID `bson:"user_id"`
}
