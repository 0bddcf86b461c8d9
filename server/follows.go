package server

import (
	"net/http"
	"yatube/auth"
)

func (s *Server) followAuthor(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if _, err := s.follows.Follow(r.Context(), auth.UserFromContext(r.Context()), username); err != nil {
		s.sendError(w, r, err)
		return
	}
	redirect(w, r, profileURL(username))
}

func (s *Server) unfollowAuthor(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if _, err := s.follows.Unfollow(r.Context(), auth.UserFromContext(r.Context()), username); err != nil {
		s.sendError(w, r, err)
		return
	}
	redirect(w, r, profileURL(username))
}
