package entities

import "time"

// DefaultAvatarURL is used when the identity provider sends no image.
const DefaultAvatarURL = "https://quickshow.example.com/avatars/default.png"

// User mirrors an account in the external identity provider. The
// provider's user id is the primary key; the record's lifecycle is
// driven entirely by identity events.
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Image     string    `json:"image" db:"image"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
