package server

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"yatube/storage"

	log "github.com/sirupsen/logrus"
)

func (s *Server) sendNotFound(w http.ResponseWriter, r *http.Request) {
	log.Infof("Not found: %s", r.URL.Path)
	s.render(w, http.StatusNotFound, "404", pageData{Path: r.URL.Path})
}

// sendError maps storage errors onto error pages.
func (s *Server) sendError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		s.sendNotFound(w, r)
		return
	}
	log.Errorf("Error serving %s %s: %v", r.Method, r.URL.Path, err)
	s.render(w, http.StatusInternalServerError, "500", pageData{Path: r.URL.Path})
}

func getQueryItem(values url.Values, key string) string {
	value := values[key]
	result := ""
	if len(value) == 1 {
		result = value[0]
	}
	return result
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, storage.ErrNotFound
	}
	return id, nil
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusFound)
}

func postURL(id int64) string {
	return "/posts/" + strconv.FormatInt(id, 10) + "/"
}

func profileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}
