package validation

import (
	"taskboard/internal/errors"
)

// RegisterRequest is the raw registration payload.
type RegisterRequest struct {
	Firstname   string  `json:"firstname"`
	Lastname    string  `json:"lastname"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	MobilePhone *string `json:"mobilePhone"`
	Country     *string `json:"country"`
	City        *string `json:"city"`
	Address     *string `json:"address"`
}

// Validate normalizes the payload in place (trimming names and email) and
// returns the field violations, if any.
func (r *RegisterRequest) Validate() *errors.ValidationError {
	var v violations

	r.Firstname = checkName(&v, "firstname", "Firstname", r.Firstname)
	r.Lastname = checkName(&v, "lastname", "Lastname", r.Lastname)
	r.Email = checkEmail(&v, "email", r.Email)
	checkPassword(&v, "password", r.Password)
	checkMobilePhone(&v, "mobilePhone", r.MobilePhone)

	return v.err()
}

// LoginRequest is the raw login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate trims the email and checks both fields are present and
// well-formed.
func (r *LoginRequest) Validate() *errors.ValidationError {
	var v violations

	r.Email = checkEmail(&v, "email", r.Email)
	if r.Password == "" {
		v.add("password", "Password is required")
	}

	return v.err()
}

// UpdateProfileRequest is the raw profile update payload. Name and email
// are required; the remaining fields are optional.
type UpdateProfileRequest struct {
	Firstname   string  `json:"firstname"`
	Lastname    string  `json:"lastname"`
	Email       string  `json:"email"`
	MobilePhone *string `json:"mobilePhone"`
	Country     *string `json:"country"`
	City        *string `json:"city"`
	Address     *string `json:"address"`
}

// Validate normalizes the payload in place and returns the field
// violations, if any.
func (r *UpdateProfileRequest) Validate() *errors.ValidationError {
	var v violations

	r.Firstname = checkName(&v, "firstname", "Firstname", r.Firstname)
	r.Lastname = checkName(&v, "lastname", "Lastname", r.Lastname)
	r.Email = checkEmail(&v, "email", r.Email)
	checkMobilePhone(&v, "mobilePhone", r.MobilePhone)

	return v.err()
}
