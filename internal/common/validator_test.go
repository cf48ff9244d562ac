package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testAuthor struct {
	Name string `json:"name" validate:"required,max=10"`
}

type testRequest struct {
	Title  string     `json:"title" validate:"required,max=5"`
	Rating int        `json:"rating" validate:"required,min=1,max=5"`
	Status string     `json:"status" validate:"omitempty,oneof=new read"`
	Image  string     `json:"image" validate:"omitempty,url"`
	Tags   []string   `json:"tags" validate:"max=2"`
	Author testAuthor `json:"author"`
}

func TestValidatorStruct(t *testing.T) {
	testCases := []struct {
		name string
		req  testRequest
		want map[string]string
	}{
		{
			name: "valid request",
			req:  testRequest{Title: "hello", Rating: 3, Status: "read", Author: testAuthor{Name: "Ann"}},
			want: map[string]string{},
		},
		{
			name: "missing fields",
			req:  testRequest{},
			want: map[string]string{
				"title":       "must be provided",
				"rating":      "must be provided",
				"author.name": "must be provided",
			},
		},
		{
			name: "out of range",
			req: testRequest{
				Title:  "too long title",
				Rating: 9,
				Status: "archived",
				Image:  "not a url",
				Tags:   []string{"a", "b", "c"},
				Author: testAuthor{Name: "Ann"},
			},
			want: map[string]string{
				"title":  "must not be more than 5 characters long",
				"rating": "must be at most 5",
				"status": "must be one of: new, read",
				"image":  "must be a valid URL",
				"tags":   "must not contain more than 2 items",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := NewValidator()
			v.Struct(tc.req)
			assert.Equal(t, tc.want, v.Errors)
			assert.Equal(t, len(tc.want) == 0, v.Valid())
		})
	}
}

func TestValidatorCheck(t *testing.T) {
	v := NewValidator()
	v.Check(false, "email", "must be provided")
	v.Check(false, "email", "must be a valid email address")
	v.Check(true, "name", "must be provided")

	assert.False(t, v.Valid())
	assert.Equal(t, map[string]string{"email": "must be provided"}, v.Errors)
}

func TestValidationErrorSummary(t *testing.T) {
	err := ValidationError{Errors: map[string]string{
		"title":   "must be provided",
		"content": "must be provided",
	}}

	assert.Equal(t, "content must be provided; title must be provided", err.Summary())
}
