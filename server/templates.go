package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"path"
	"time"
	"yatube/feeds"
	"yatube/forms"
	"yatube/storage/models"

	log "github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pageNames = []string{
	"index",
	"follow",
	"group_list",
	"profile",
	"post_detail",
	"create_post",
	"login",
	"signup",
	"logged_out",
	"404",
	"500",
}

var templateFuncs = template.FuncMap{
	"formatDate": func(t time.Time) string {
		return t.Format("2 January 2006")
	},
	"mediaURL": func(image string) string {
		return path.Join("/media", image)
	},
}

// pageData is the single context every page template renders from; each
// page reads only the fields it needs.
type pageData struct {
	Viewer *models.User
	Path   string

	Listing     feeds.Listing
	Post        models.Post
	PostsCount  int
	Comments    []models.Comment
	CommentForm *forms.CommentForm
	PostForm    *forms.PostForm
	IsEdit      bool
	LoginForm   *forms.LoginForm
	SignupForm  *forms.SignupForm
}

type templates map[string]*template.Template

func loadTemplates() (templates, error) {
	pages := make(templates, len(pageNames))
	for _, name := range pageNames {
		page, err := template.New(name).Funcs(templateFuncs).ParseFS(
			templateFiles,
			"templates/base.html",
			fmt.Sprintf("templates/%s.html", name),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = page
	}
	return pages, nil
}

func (t templates) render(name string, data pageData) ([]byte, error) {
	page, ok := t[name]
	if !ok {
		return nil, fmt.Errorf("unknown template %s", name)
	}
	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, "base", data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data pageData) {
	body, err := s.templates.render(name, data)
	if err != nil {
		log.Errorf("Error rendering %s: %v", name, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}
