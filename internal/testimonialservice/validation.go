package testimonialservice

import "github.com/sushihentaime/currytech/internal/common"

func validateTestimonial(v *common.Validator, req CreateTestimonialRequest) {
	v.Struct(req)
}
