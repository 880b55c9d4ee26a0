package forums

import (
	"clubhouse/flow"
	"clubhouse/service"
)

// List sizes
const (
	recentThreads = 5
	threadPage    = 10
	replyPreview  = 3
	replyPage     = 20
)

type Feature struct {
	forumService service.ForumService
	userService  service.UserService
	flows        *flow.Controller
}

func New(forumService service.ForumService, userService service.UserService, flows *flow.Controller) *Feature {
	return &Feature{
		forumService: forumService,
		userService:  userService,
		flows:        flows,
	}
}
