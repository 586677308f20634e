package services

import "errors"

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindForbidden
)

// Error is a request-terminal failure whose Message is safe to show the
// client.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

const (
	MsgValidationFails  = "Validation fails"
	MsgMeetupNotFound   = "This meetup doesn't exist anymore"
	MsgEditForbidden    = "You don't have permission to edit this meetup"
	MsgCancelPastMeetup = "You can only cancel meetups that didn't happen"
	MsgCancelForbidden  = "You don't have permission to cancel this meetup"
)

func ValidationError(err error) *Error {
	return &Error{Kind: KindValidation, Message: MsgValidationFails, Err: err}
}

func NotFoundError() *Error {
	return &Error{Kind: KindNotFound, Message: MsgMeetupNotFound}
}

func ForbiddenError(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// KindOf reports the kind of err, or 0 when err is not a request error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
