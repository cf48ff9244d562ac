package userservice

import (
	"regexp"

	"github.com/sushihentaime/currytech/internal/common"
)

var (
	EmailRX = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// bcrypt rejects anything longer
const maxPasswordBytes = 72

func validateRegistration(v *common.Validator, req RegisterRequest) {
	v.Struct(req)
	validateEmail(v, req.Email)
	v.Check(len(req.Password) <= maxPasswordBytes, "password", "must not be more than 72 bytes long")
}

func validateEmail(v *common.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(EmailRX.MatchString(email), "email", "must be a valid email address")
}
