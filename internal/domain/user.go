package domain

import "time"

const (
	UserRoleMember = "member"
	UserRoleAdmin  = "admin"
)

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatarUrl"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// Profile is the public subset of a user rendered next to participations and ratings.
type Profile struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
	}
}
