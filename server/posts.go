package server

import (
	"net/http"
	"yatube/auth"
	"yatube/feeds"
	"yatube/forms"
	"yatube/storage"
	"yatube/storage/models"

	log "github.com/sirupsen/logrus"
)

func (s *Server) renderListing(w http.ResponseWriter, r *http.Request, name string, listing feeds.Listing, err error) {
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	s.render(w, http.StatusOK, name, pageData{
		Viewer:  auth.UserFromContext(r.Context()),
		Listing: listing,
	})
}

// getIndex is cached as a whole, so it must not depend on the viewer.
func (s *Server) getIndex(w http.ResponseWriter, r *http.Request) {
	listing, err := s.feed.Index(r.Context(), getQueryItem(r.URL.Query(), "page"))
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	s.render(w, http.StatusOK, "index", pageData{Listing: listing})
}

func (s *Server) getGroup(w http.ResponseWriter, r *http.Request) {
	listing, err := s.feed.Group(r.Context(), r.PathValue("slug"), getQueryItem(r.URL.Query(), "page"))
	s.renderListing(w, r, "group_list", listing, err)
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	listing, err := s.feed.Profile(
		r.Context(),
		r.PathValue("username"),
		auth.UserFromContext(r.Context()),
		getQueryItem(r.URL.Query(), "page"),
	)
	s.renderListing(w, r, "profile", listing, err)
}

func (s *Server) getFollowing(w http.ResponseWriter, r *http.Request) {
	listing, err := s.feed.Following(r.Context(), auth.UserFromContext(r.Context()), getQueryItem(r.URL.Query(), "page"))
	s.renderListing(w, r, "follow", listing, err)
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	post, err := s.store.GetPost(r.Context(), id)
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	s.renderPostDetail(w, r, http.StatusOK, post, forms.EmptyCommentForm())
}

func (s *Server) renderPostDetail(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	post models.Post,
	commentForm *forms.CommentForm,
) {
	ctx := r.Context()
	postsCount, err := s.feed.AuthorPostsCount(ctx, post.AuthorID)
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	comments, err := s.store.ListComments(ctx, post.ID)
	if err != nil {
		s.sendError(w, r, err)
		return
	}

	s.render(w, status, "post_detail", pageData{
		Viewer:      auth.UserFromContext(ctx),
		Post:        post,
		PostsCount:  postsCount,
		Comments:    comments,
		CommentForm: commentForm,
	})
}

func (s *Server) getCreatePost(w http.ResponseWriter, r *http.Request) {
	groups, err := s.store.ListGroups(r.Context())
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	s.renderPostForm(w, r, forms.NewPostForm(groups), false)
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewer := auth.UserFromContext(ctx)

	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	form := forms.NewPostForm(groups)
	r.Body = http.MaxBytesReader(w, r.Body, forms.MaxRequestSize)
	if err := form.Bind(r); err != nil {
		log.Infof("Invalid post submission: %v", err)
		form.Errors.Add("image", "The upload could not be read.")
	}
	if !form.Validate() {
		s.renderPostForm(w, r, form, false)
		return
	}

	image, err := s.saveUpload(form.Image)
	if err != nil {
		s.sendError(w, r, err)
		return
	}

	_, err = s.store.CreatePost(ctx, storage.NewPost{
		Text:     form.Text,
		Image:    image,
		AuthorID: viewer.ID,
		GroupID:  form.GroupID,
	})
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	redirect(w, r, profileURL(viewer.Username))
}

// loadOwnPost resolves the post being edited. Non-authors are sent back to
// the post page; ok is false whenever a response has been written.
func (s *Server) loadOwnPost(w http.ResponseWriter, r *http.Request) (post models.Post, groups []models.Group, ok bool) {
	ctx := r.Context()
	id, err := pathID(r, "id")
	if err != nil {
		s.sendError(w, r, err)
		return post, nil, false
	}
	post, err = s.store.GetPost(ctx, id)
	if err != nil {
		s.sendError(w, r, err)
		return post, nil, false
	}
	if post.AuthorID != auth.UserFromContext(ctx).ID {
		redirect(w, r, postURL(post.ID))
		return post, nil, false
	}
	groups, err = s.store.ListGroups(ctx)
	if err != nil {
		s.sendError(w, r, err)
		return post, nil, false
	}
	return post, groups, true
}

func (s *Server) getEditPost(w http.ResponseWriter, r *http.Request) {
	post, groups, ok := s.loadOwnPost(w, r)
	if !ok {
		return
	}
	s.renderPostForm(w, r, forms.EditPostForm(post, groups), true)
}

func (s *Server) editPost(w http.ResponseWriter, r *http.Request) {
	post, groups, ok := s.loadOwnPost(w, r)
	if !ok {
		return
	}

	form := forms.EditPostForm(post, groups)
	r.Body = http.MaxBytesReader(w, r.Body, forms.MaxRequestSize)
	if err := form.Bind(r); err != nil {
		log.Infof("Invalid post submission: %v", err)
		form.Errors.Add("image", "The upload could not be read.")
	}
	if !form.Validate() {
		s.renderPostForm(w, r, form, true)
		return
	}

	update := storage.PostUpdate{Text: form.Text, GroupID: form.GroupID}
	if form.Image != nil {
		image, err := s.saveUpload(form.Image)
		if err != nil {
			s.sendError(w, r, err)
			return
		}
		update.Image = &image
	}

	if _, err := s.store.UpdatePost(r.Context(), post.ID, update); err != nil {
		s.sendError(w, r, err)
		return
	}
	redirect(w, r, postURL(post.ID))
}

func (s *Server) renderPostForm(w http.ResponseWriter, r *http.Request, form *forms.PostForm, isEdit bool) {
	s.render(w, http.StatusOK, "create_post", pageData{
		Viewer:   auth.UserFromContext(r.Context()),
		PostForm: form,
		IsEdit:   isEdit,
	})
}
