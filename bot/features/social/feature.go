package social

import (
	"clubhouse/service"
)

// List sizes
const (
	findLimit        = 6
	listLimit        = 20
	leaderboardLimit = 10
	threadLimit      = 10
)

type Feature struct {
	userService   service.UserService
	socialService service.SocialService
	forumService  service.ForumService
	badgeService  service.BadgeService
}

func New(userService service.UserService, socialService service.SocialService, forumService service.ForumService, badgeService service.BadgeService) *Feature {
	return &Feature{
		userService:   userService,
		socialService: socialService,
		forumService:  forumService,
		badgeService:  badgeService,
	}
}
