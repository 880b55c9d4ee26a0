package profile

import (
	"clubhouse/service"
)

type Feature struct {
	userService  service.UserService
	badgeService service.BadgeService
}

func New(userService service.UserService, badgeService service.BadgeService) *Feature {
	return &Feature{
		userService:  userService,
		badgeService: badgeService,
	}
}
