package contactservice

import (
	"regexp"

	"github.com/sushihentaime/currytech/internal/common"
)

var (
	EmailRX = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
)

func validateContact(v *common.Validator, req SubmitRequest) {
	v.Struct(req)
	v.Check(req.Email == "" || EmailRX.MatchString(req.Email), "email", "must be a valid email address")
}

func validateStatus(v *common.Validator, status Status) {
	v.Check(status.Valid(), "status", "must be one of: new, read, replied, resolved")
}
