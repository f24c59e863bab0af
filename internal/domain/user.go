package domain

import "time"

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	MicrosoftID    string    `json:"-"`
	Name           string    `json:"name"`
	Surname        string    `json:"surname"`
	Bio            string    `json:"bio,omitempty"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
