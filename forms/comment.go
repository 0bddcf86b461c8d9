package forms

import (
	"net/http"
	"strings"
)

type CommentForm struct {
	Text   string
	Errors Errors
}

// NewCommentForm reads the comment text only; any author or post fields in
// the submission are ignored.
func NewCommentForm(r *http.Request) *CommentForm {
	return &CommentForm{
		Text:   r.PostFormValue("text"),
		Errors: Errors{},
	}
}

func (f *CommentForm) Validate() bool {
	if strings.TrimSpace(f.Text) == "" {
		f.Errors.Add("text", "This field is required.")
	}
	return f.Errors.Valid()
}

func EmptyCommentForm() *CommentForm {
	return &CommentForm{Errors: Errors{}}
}
