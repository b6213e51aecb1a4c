package domain

import "errors"

// Validation errors.
var (
	ErrInvalidID           = errors.New("invalid id")
	ErrTitleRequired       = errors.New("title is required")
	ErrInsufficientOptions = errors.New("at least 2 options are required")
	ErrEmptyOption         = errors.New("option text is required")
	ErrInvalidTimeRange    = errors.New("end time must be after start time")
	ErrInvalidOption       = errors.New("invalid option")
	ErrVoteNotActive       = errors.New("this vote is not currently active")
	ErrEmptyContent        = errors.New("comment content is required")
	ErrContentTooLong      = errors.New("comment must be 500 characters or less")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

// Conflict errors.
var (
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrAlreadyVoted      = errors.New("you have already voted")
)

var (
	ErrPollNotFound    = errors.New("vote not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrUserNotFound    = errors.New("user not found")

	ErrUnauthenticated = errors.New("not authorized")
	ErrForbidden       = errors.New("you can only modify your own comments")
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
)

var kinds = map[Kind][]error{
	KindValidation: {
		ErrInvalidID, ErrTitleRequired, ErrInsufficientOptions, ErrEmptyOption,
		ErrInvalidTimeRange, ErrInvalidOption, ErrVoteNotActive, ErrEmptyContent,
		ErrContentTooLong, ErrInvalidCredentials,
	},
	KindConflict:        {ErrDuplicateEmail, ErrDuplicateUsername, ErrAlreadyVoted},
	KindNotFound:        {ErrPollNotFound, ErrCommentNotFound, ErrUserNotFound},
	KindUnauthenticated: {ErrUnauthenticated},
	KindForbidden:       {ErrForbidden},
}

// KindOf reports the class of err. Unrecognised errors are KindInternal.
func KindOf(err error) Kind {
	for kind, targets := range kinds {
		for _, target := range targets {
			if errors.Is(err, target) {
				return kind
			}
		}
	}
	return KindInternal
}
