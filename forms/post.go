package forms

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"yatube/storage/models"
)

const (
	MaxUploadSize = 5 << 20
	// MaxRequestSize bounds a whole create/edit submission: the image plus the text fields.
	MaxRequestSize = MaxUploadSize + 1<<20
)

var imageExtensions = map[string]bool{
	".gif":  true,
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
}

type PostForm struct {
	Text    string
	GroupID *int64
	Image   *multipart.FileHeader
	Groups  []models.Group
	Errors  Errors
}

func NewPostForm(groups []models.Group) *PostForm {
	return &PostForm{Groups: groups, Errors: Errors{}}
}

// EditPostForm is pre-filled from an existing post.
func EditPostForm(post models.Post, groups []models.Group) *PostForm {
	form := NewPostForm(groups)
	form.Text = post.Text
	form.GroupID = post.GroupID
	return form
}

// Bind reads a submitted create/edit form, including an optional image.
func (f *PostForm) Bind(r *http.Request) error {
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil && err != http.ErrNotMultipart {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			f.Errors.Add("image", "The image is too large.")
			return nil
		}
		return err
	}

	f.Text = r.PostFormValue("text")
	f.GroupID = nil
	if rawGroup := strings.TrimSpace(r.PostFormValue("group")); rawGroup != "" {
		groupID, err := strconv.ParseInt(rawGroup, 10, 64)
		if err != nil {
			f.Errors.Add("group", "Select a valid choice.")
		} else {
			f.GroupID = &groupID
		}
	}

	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["image"]; len(files) > 0 && files[0].Filename != "" {
			f.Image = files[0]
		}
	}
	return nil
}

func (f *PostForm) Validate() bool {
	if strings.TrimSpace(f.Text) == "" {
		f.Errors.Add("text", "This field is required.")
	}

	if f.GroupID != nil && !f.knownGroup(*f.GroupID) {
		f.Errors.Add("group", "Select a valid choice.")
	}

	if f.Image != nil {
		if !imageExtensions[strings.ToLower(filepath.Ext(f.Image.Filename))] {
			f.Errors.Add("image", "Upload a valid image.")
		} else if f.Image.Size > MaxUploadSize {
			f.Errors.Add("image", "The image is too large.")
		}
	}

	return f.Errors.Valid()
}

func (f *PostForm) Selected(groupID int64) bool {
	return f.GroupID != nil && *f.GroupID == groupID
}

func (f *PostForm) knownGroup(groupID int64) bool {
	for _, group := range f.Groups {
		if group.ID == groupID {
			return true
		}
	}
	return false
}
