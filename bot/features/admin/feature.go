package admin

import (
	"clubhouse/flow"
	"clubhouse/service"
)

type Feature struct {
	adminService      service.AdminService
	userService       service.UserService
	paymentService    service.PaymentService
	forumService      service.ForumService
	tournamentService service.TournamentService
	flows             *flow.Controller
}

func New(
	adminService service.AdminService,
	userService service.UserService,
	paymentService service.PaymentService,
	forumService service.ForumService,
	tournamentService service.TournamentService,
	flows *flow.Controller,
) *Feature {
	return &Feature{
		adminService:      adminService,
		userService:       userService,
		paymentService:    paymentService,
		forumService:      forumService,
		tournamentService: tournamentService,
		flows:             flows,
	}
}
