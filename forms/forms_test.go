package forms

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"yatube/storage/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postRequest(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

var commentTests = []struct {
	text  string
	valid bool
}{
	{"Nice post", true},
	{"", false},
	{"   \n\t", false},
}

func TestCommentForm(t *testing.T) {
	for _, tt := range commentTests {
		t.Run(tt.text, func(t *testing.T) {
			form := NewCommentForm(postRequest(url.Values{"text": {tt.text}, "author": {"42"}}))
			assert.Equal(t, tt.valid, form.Validate())
			if !tt.valid {
				assert.NotEmpty(t, form.Errors.Get("text"))
			}
		})
	}
}

func TestPostFormValidation(t *testing.T) {
	groups := []models.Group{{ID: 7, Title: "Cats", Slug: "cats"}}

	form := NewPostForm(groups)
	require.NoError(t, form.Bind(postRequest(url.Values{"text": {"hello"}, "group": {"7"}})))
	assert.True(t, form.Validate())
	require.NotNil(t, form.GroupID)
	assert.Equal(t, int64(7), *form.GroupID)
	assert.True(t, form.Selected(7))

	form = NewPostForm(groups)
	require.NoError(t, form.Bind(postRequest(url.Values{"text": {"hello"}, "group": {"8"}})))
	assert.False(t, form.Validate())
	assert.NotEmpty(t, form.Errors.Get("group"))

	form = NewPostForm(groups)
	require.NoError(t, form.Bind(postRequest(url.Values{"text": {" "}})))
	assert.False(t, form.Validate())
	assert.NotEmpty(t, form.Errors.Get("text"))
	assert.Nil(t, form.GroupID)
}

func TestPostFormImage(t *testing.T) {
	build := func(filename string) *http.Request {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		writer.WriteField("text", "with image")
		part, _ := writer.CreateFormFile("image", filename)
		part.Write([]byte("GIF89a"))
		writer.Close()

		r := httptest.NewRequest(http.MethodPost, "/", body)
		r.Header.Set("Content-Type", writer.FormDataContentType())
		return r
	}

	form := NewPostForm(nil)
	require.NoError(t, form.Bind(build("cat.gif")))
	assert.True(t, form.Validate())
	require.NotNil(t, form.Image)
	assert.Equal(t, "cat.gif", form.Image.Filename)

	form = NewPostForm(nil)
	require.NoError(t, form.Bind(build("notes.txt")))
	assert.False(t, form.Validate())
	assert.NotEmpty(t, form.Errors.Get("image"))
}

func TestPostFormBodyTooLarge(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.WriteField("text", "huge image")
	part, _ := writer.CreateFormFile("image", "big.gif")
	part.Write(bytes.Repeat([]byte{'x'}, MaxRequestSize+1))
	writer.Close()

	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", body)
	r.Header.Set("Content-Type", writer.FormDataContentType())
	r.Body = http.MaxBytesReader(rr, r.Body, MaxRequestSize)

	form := NewPostForm(nil)
	require.NoError(t, form.Bind(r))
	assert.Contains(t, form.Errors.Get("image"), "The image is too large.")
	assert.False(t, form.Validate())
}

func TestSignupForm(t *testing.T) {
	form := NewSignupForm(postRequest(url.Values{
		"username": {"leo"}, "password1": {"secret-pass"}, "password2": {"secret-pass"},
	}))
	assert.True(t, form.Validate())

	form = NewSignupForm(postRequest(url.Values{
		"username": {"bad name"}, "password1": {"short"}, "password2": {"other"},
	}))
	assert.False(t, form.Validate())
	assert.NotEmpty(t, form.Errors.Get("username"))
	assert.NotEmpty(t, form.Errors.Get("password1"))
	assert.NotEmpty(t, form.Errors.Get("password2"))
}

func TestLoginForm(t *testing.T) {
	form := NewLoginForm(postRequest(url.Values{"username": {"leo"}, "password": {"pw"}, "next": {"/follow/"}}))
	assert.True(t, form.Validate())
	assert.Equal(t, "/follow/", form.Next)

	form = NewLoginForm(postRequest(url.Values{}))
	assert.False(t, form.Validate())
}
