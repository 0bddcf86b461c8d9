package forms

import (
	"net/http"
	"regexp"
	"strings"
)

const minPasswordLength = 8

var usernamePattern = regexp.MustCompile(`^[\w.@+-]{1,150}$`)

type LoginForm struct {
	Username string
	Password string
	Next     string
	Errors   Errors
}

func NewLoginForm(r *http.Request) *LoginForm {
	return &LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
		Next:     r.PostFormValue("next"),
		Errors:   Errors{},
	}
}

func (f *LoginForm) Validate() bool {
	if f.Username == "" {
		f.Errors.Add("username", "This field is required.")
	}
	if f.Password == "" {
		f.Errors.Add("password", "This field is required.")
	}
	return f.Errors.Valid()
}

type SignupForm struct {
	Username     string
	Password     string
	Confirmation string
	Errors       Errors
}

func NewSignupForm(r *http.Request) *SignupForm {
	return &SignupForm{
		Username:     strings.TrimSpace(r.PostFormValue("username")),
		Password:     r.PostFormValue("password1"),
		Confirmation: r.PostFormValue("password2"),
		Errors:       Errors{},
	}
}

func (f *SignupForm) Validate() bool {
	if !usernamePattern.MatchString(f.Username) {
		f.Errors.Add("username", "Enter a valid username: letters, digits and @/./+/-/_ only.")
	}
	if len(f.Password) < minPasswordLength {
		f.Errors.Add("password1", "This password is too short.")
	}
	if f.Password != f.Confirmation {
		f.Errors.Add("password2", "The two password fields didn't match.")
	}
	return f.Errors.Valid()
}
