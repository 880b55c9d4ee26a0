package tournaments

import (
	"clubhouse/flow"
	"clubhouse/service"
)

// Tournament list sizes
const (
	menuLimit        = 6
	myLimit          = 10
	leaderboardLimit = 10
)

type Feature struct {
	tournamentService service.TournamentService
	userService       service.UserService
	flows             *flow.Controller
}

func New(tournamentService service.TournamentService, userService service.UserService, flows *flow.Controller) *Feature {
	return &Feature{
		tournamentService: tournamentService,
		userService:       userService,
		flows:             flows,
	}
}
