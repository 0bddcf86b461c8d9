package server

import (
	"net/http"
	"yatube/auth"
	"yatube/forms"
	"yatube/storage"

	log "github.com/sirupsen/logrus"
)

// addComment attaches a comment by the session user. Invalid submissions
// create nothing and show the post page with the form again.
func (s *Server) addComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewer := auth.UserFromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		s.sendError(w, r, err)
		return
	}

	form := forms.NewCommentForm(r)
	if !form.Validate() {
		s.renderPostDetail(w, r, http.StatusOK, post, form)
		return
	}

	_, err = s.store.CreateComment(ctx, storage.NewComment{
		Text:     form.Text,
		AuthorID: viewer.ID,
		PostID:   &post.ID,
	})
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	log.WithFields(log.Fields{"post": post.ID, "author": viewer.Username}).Info("Comment added")
	redirect(w, r, postURL(post.ID))
}
