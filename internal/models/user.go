package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type Experience struct {
	Role        string `bson:"role" json:"role"`
	Company     string `bson:"company" json:"company"`
	Period      string `bson:"period" json:"period"`
	Description string `bson:"description" json:"description"`
}

type Education struct {
	Degree string `bson:"degree" json:"degree"`
	School string `bson:"school" json:"school"`
	Year   string `bson:"year" json:"year"`
}

type UserStats struct {
	Projects      int64 `bson:"projects" json:"projects"`
	Contributions int64 `bson:"contributions" json:"contributions"`
	Followers     int64 `bson:"followers" json:"followers"`
	Following     int64 `bson:"following" json:"following"`
}

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name" validate:"required"`
	Email          string             `bson:"email" json:"email" validate:"required,email"`
	Password       string             `bson:"password" json:"-"`
	Role           string             `bson:"role" json:"role"`
	ProfilePicture string             `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Website        string             `bson:"website,omitempty" json:"website,omitempty"`
	GitHub         string             `bson:"github,omitempty" json:"github,omitempty"`
	Twitter        string             `bson:"twitter,omitempty" json:"twitter,omitempty"`
	LinkedIn       string             `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Skills         []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	Experience     []Experience       `bson:"experience,omitempty" json:"experience,omitempty"`
	Education      []Education        `bson:"education,omitempty" json:"education,omitempty"`
	Stats          UserStats          `bson:"stats" json:"stats"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SanitizedUser is the shape returned to clients after authentication.
// The password hash never leaves the server.
type SanitizedUser struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

func (u *User) Sanitize() *SanitizedUser {
	return &SanitizedUser{
		ID:             u.ID.Hex(),
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		ProfilePicture: u.ProfilePicture,
	}
}

// ProfileUpdate is the allow-list for PUT /profile. Anything not listed here
// (email, password, role, stats) cannot be changed through the profile
// endpoint. Pointer fields distinguish "absent" from "set to zero value".
type ProfileUpdate struct {
	Name           *string       `json:"name"`
	Location       *string       `json:"location"`
	Bio            *string       `json:"bio"`
	Website        *string       `json:"website"`
	GitHub         *string       `json:"github"`
	Twitter        *string       `json:"twitter"`
	LinkedIn       *string       `json:"linkedin"`
	Skills         *[]string     `json:"skills"`
	Experience     *[]Experience `json:"experience"`
	Education      *[]Education  `json:"education"`
	ProfilePicture *string       `json:"profilePicture"`
}
