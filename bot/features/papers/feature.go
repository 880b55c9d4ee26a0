package papers

import (
	"clubhouse/flow"
	"clubhouse/service"
)

type Feature struct {
	userService    service.UserService
	paymentService service.PaymentService
	flows          *flow.Controller
	supportContact string
}

func New(userService service.UserService, paymentService service.PaymentService, flows *flow.Controller, supportContact string) *Feature {
	return &Feature{
		userService:    userService,
		paymentService: paymentService,
		flows:          flows,
		supportContact: supportContact,
	}
}
