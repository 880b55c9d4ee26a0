package common

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// GenericErrorMessage is shown when a failure has no user-facing explanation
const GenericErrorMessage = "An error occurred. Please try again."

// BotError pairs the text shown to the user with the detail written to the log
type BotError struct {
	UserMessage string
	LogMessage  string
	Err         error
}

func (e *BotError) Error() string {
	if e.Err == nil {
		return e.LogMessage
	}
	if e.LogMessage == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.LogMessage, e.Err)
}

func (e *BotError) Unwrap() error {
	return e.Err
}

// UserError is an expected failure the user caused, such as joining twice
func UserError(userMessage string, err error) *BotError {
	return &BotError{
		UserMessage: userMessage,
		LogMessage:  userMessage,
		Err:         err,
	}
}

// InternalError hides the cause from the user behind the generic message
func InternalError(logMessage string, err error) *BotError {
	return &BotError{
		UserMessage: GenericErrorMessage,
		LogMessage:  logMessage,
		Err:         err,
	}
}

// HandleError logs err and returns the message to show the user. Expected
// failures log at info, everything else at error.
func HandleError(err error, fields log.Fields) string {
	entry := log.WithFields(fields)

	var botErr *BotError
	if errors.As(err, &botErr) {
		if botErr.UserMessage == GenericErrorMessage {
			entry.WithError(botErr.Err).Error(botErr.LogMessage)
		} else {
			entry.WithError(botErr.Err).Info(botErr.LogMessage)
		}
		return botErr.UserMessage
	}

	entry.WithError(err).Error("Unhandled error while processing update")
	return GenericErrorMessage
}
