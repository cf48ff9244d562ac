package contactservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sushihentaime/currytech/internal/common"
)

func TestEmailRX(t *testing.T) {
	testCases := []struct {
		email string
		valid bool
	}{
		{email: "jane@example.com", valid: true},
		{email: "jane.doe-x@mail.example.org", valid: true},
		{email: "jane@example.c", valid: false},
		{email: "jane@example.info", valid: false},
		{email: "jane@", valid: false},
		{email: "@example.com", valid: false},
		{email: "jane example@example.com", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.email, func(t *testing.T) {
			assert.Equal(t, tc.valid, EmailRX.MatchString(tc.email))
		})
	}
}

func TestValidateContact(t *testing.T) {
	testCases := []struct {
		name   string
		req    SubmitRequest
		errors map[string]string
	}{
		{
			name: "Valid",
			req:  SubmitRequest{Name: "Jane", Email: "jane@example.com", Subject: "Quote", Message: "Hello"},
		},
		{
			name: "Empty",
			req:  SubmitRequest{},
			errors: map[string]string{
				"name":    "must be provided",
				"email":   "must be provided",
				"subject": "must be provided",
				"message": "must be provided",
			},
		},
		{
			name:   "Bad Email",
			req:    SubmitRequest{Name: "Jane", Email: "jane", Subject: "Quote", Message: "Hello"},
			errors: map[string]string{"email": "must be a valid email address"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validateContact(v, tc.req)

			if tc.errors == nil {
				assert.True(t, v.Valid(), v.Errors)
				return
			}

			assert.Equal(t, tc.errors, v.Errors)
		})
	}
}

func TestValidateStatus(t *testing.T) {
	for _, s := range []Status{StatusNew, StatusRead, StatusReplied, StatusResolved} {
		v := common.NewValidator()
		validateStatus(v, s)
		assert.True(t, v.Valid(), s)
	}

	v := common.NewValidator()
	validateStatus(v, Status("archived"))
	assert.Equal(t, map[string]string{"status": "must be one of: new, read, replied, resolved"}, v.Errors)
}
