package service

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyJoined     = errors.New("already joined this tournament")
	ErrNotParticipant    = errors.New("not a participant of this tournament")
	ErrTournamentFull    = errors.New("tournament is full")
	ErrTournamentClosed  = errors.New("tournament is not open for registration")
	ErrInvalidTransition = errors.New("invalid tournament status transition")
	ErrInvalidTeamCount  = errors.New("team count out of range")
	ErrSelfFollow        = errors.New("cannot follow yourself")
	ErrAlreadyFollowing  = errors.New("already following")
	ErrNotFollowing      = errors.New("not following")
	ErrThreadLocked      = errors.New("thread is locked")
	ErrEmptyContent      = errors.New("content must not be empty")
	ErrNotAdmin          = errors.New("admin access only")
	ErrNotSuperAdmin     = errors.New("only the main admin can manage admins")
	ErrAlreadyAdmin      = errors.New("user is already an admin")
	ErrProtectedAdmin    = errors.New("the main admin cannot be removed")
	ErrPaymentNotFound   = errors.New("no pending payment")
	ErrPackageNotFound   = errors.New("package not found")
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrInvalidCode       = errors.New("invalid payment code format")
)
