package model

import "github.com/autom8ter/instadb/errors"

// User is an end-user account managed through the admin API
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	RefreshToken string `json:"refresh_token,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// UserLookup targets a user by exactly one of email, id, or refresh token
type UserLookup struct {
	Email        string `json:"email,omitempty"`
	ID           string `json:"id,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// LookupByEmail targets a user by email
func LookupByEmail(email string) UserLookup { return UserLookup{Email: email} }

// LookupByID targets a user by id
func LookupByID(id string) UserLookup { return UserLookup{ID: id} }

// LookupByRefreshToken targets a user by refresh token
func LookupByRefreshToken(token string) UserLookup { return UserLookup{RefreshToken: token} }

// Validate checks that exactly one lookup field is set
func (l UserLookup) Validate() error {
	var set int
	for _, v := range []string{l.Email, l.ID, l.RefreshToken} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return errors.New(errors.Validation, "user lookup: exactly one of email, id, or refresh_token must be set")
	}
	return nil
}

// Params returns the lookup as request query parameters
func (l UserLookup) Params() map[string]string {
	params := map[string]string{}
	if l.Email != "" {
		params["email"] = l.Email
	}
	if l.ID != "" {
		params["id"] = l.ID
	}
	if l.RefreshToken != "" {
		params["refresh_token"] = l.RefreshToken
	}
	return params
}
