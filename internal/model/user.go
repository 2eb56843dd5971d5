package model

import "time"

// User represents a park visitor account as stored in the `users`
// table. PasswordHash never leaves the repository and service layers;
// handlers build their own response types from the public fields.
//
// Fields:
//  ID           – UUID primary key.
//  Email        – unique address, compared exactly as stored.
//  PasswordHash – bcrypt hash of the password.
//  FirstName    – given name.
//  LastName     – family name.
//  CreatedAt    – registration timestamp (UTC).
type User struct {
	ID           string    `db:"id"`            // users.id
	Email        string    `db:"email"`         // users.email
	PasswordHash string    `db:"password_hash"` // users.password_hash
	FirstName    string    `db:"first_name"`    // users.first_name
	LastName     string    `db:"last_name"`     // users.last_name
	CreatedAt    time.Time `db:"created_at"`    // users.created_at
}

// PublicUser is the subset of a user that may be sent to clients.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Public strips everything but the identifier and email.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email}
}

// Profile is returned by the session lookup endpoint.
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Profile returns the user's profile fields without the password hash.
func (u User) Profile() Profile {
	return Profile{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}
