package service

import "github.com/splitq/splitq/internal/models"

// UserProfile is the public slice of a user record returned by views.
// Password material never leaves the service layer.
type UserProfile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"imageUrl,omitempty"`
}

func profileOf(u *models.User) UserProfile {
	return UserProfile{
		ID:       u.ID,
		Name:     u.DisplayName,
		Email:    u.Email,
		ImageURL: u.ImageURL,
	}
}
