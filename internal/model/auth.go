package model

import "strings"

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	var verr ValidationError
	if strings.TrimSpace(c.Email) == "" {
		verr.add("email", "email is required")
	}
	if c.Password == "" {
		verr.add("password", "password is required")
	}
	return verr.orNil()
}

// Registration is the register request body.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r Registration) Validate() error {
	var verr ValidationError
	if strings.TrimSpace(r.Name) == "" {
		verr.add("name", "name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		verr.add("email", "email is required")
	}
	if r.Password == "" {
		verr.add("password", "password is required")
	}
	return verr.orNil()
}
