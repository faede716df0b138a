package dto

import (
	"time"

	"hoopboard/model"
)

// PublicProfile is a user as shown to other users (no email).
type PublicProfile struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Bio       string    `json:"bio,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func PublicProfileFrom(u model.User) PublicProfile {
	return PublicProfile{
		ID:        u.ID.Hex(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Role:      u.Role,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

type UpdateProfileReq struct {
	Bio    *string `json:"bio,omitempty"    validate:"omitempty,max=500"`
	Avatar *string `json:"avatar,omitempty" validate:"omitempty,max=500"`
}
