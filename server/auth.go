package server

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"yatube/auth"
	"yatube/forms"
	"yatube/monitoring"
	"yatube/storage"
	"yatube/storage/models"

	log "github.com/sirupsen/logrus"
)

const invalidCredentials = "Please enter a correct username and password."

func (s *Server) getSignup(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "signup", pageData{SignupForm: &forms.SignupForm{Errors: forms.Errors{}}})
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	form := forms.NewSignupForm(r)
	if !form.Validate() {
		s.render(w, http.StatusOK, "signup", pageData{SignupForm: form})
		return
	}

	passwordHash, err := auth.HashPassword(form.Password)
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	user, err := s.store.CreateUser(r.Context(), form.Username, passwordHash)
	if errors.Is(err, storage.ErrDuplicate) {
		form.Errors.Add("username", "A user with that username already exists.")
		s.render(w, http.StatusOK, "signup", pageData{SignupForm: form})
		return
	}
	if err != nil {
		s.sendError(w, r, err)
		return
	}

	log.WithField("user", user.Username).Info("User signed up")
	s.startSession(w, r, user, "/")
}

func (s *Server) getLogin(w http.ResponseWriter, r *http.Request) {
	form := &forms.LoginForm{
		Next:   getQueryItem(r.URL.Query(), "next"),
		Errors: forms.Errors{},
	}
	s.render(w, http.StatusOK, "login", pageData{LoginForm: form})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	form := forms.NewLoginForm(r)

	if !s.throttle.Allow(clientAddr(r)) {
		monitoring.LoginAttemptsThrottled.Inc()
		form.Errors.Add("__all__", "Too many login attempts. Try again later.")
		s.render(w, http.StatusTooManyRequests, "login", pageData{LoginForm: form})
		return
	}
	if !form.Validate() {
		s.render(w, http.StatusOK, "login", pageData{LoginForm: form})
		return
	}

	user, err := s.store.GetUserByUsername(r.Context(), form.Username)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.sendError(w, r, err)
		return
	}
	if err != nil || !auth.CheckPassword(user.PasswordHash, form.Password) {
		form.Errors.Add("__all__", invalidCredentials)
		s.render(w, http.StatusOK, "login", pageData{LoginForm: form})
		return
	}

	s.startSession(w, r, user, safeNext(form.Next))
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.sessions.ClearCookie(w)
	s.render(w, http.StatusOK, "logged_out", pageData{})
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request, user models.User, next string) {
	token, err := s.sessions.Issue(user)
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	s.sessions.SetCookie(w, token)
	redirect(w, r, next)
}

// safeNext only allows local redirect targets.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
