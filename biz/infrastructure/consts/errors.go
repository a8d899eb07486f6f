package consts

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Errno struct {
	err  error
	code codes.Code
}

// GRPCStatus implements the GRPCStatus method
func (en *Errno) GRPCStatus() *status.Status {
	return status.New(en.code, en.err.Error())
}

// Error implements the error interface
func (en *Errno) Error() string {
	return en.err.Error()
}

// NewErrno creates a custom error
func NewErrno(code codes.Code, err error) *Errno {
	return &Errno{
		err:  err,
		code: code,
	}
}

// exam lifecycle errors
var (
	ErrForbidden            = NewErrno(codes.PermissionDenied, errors.New("forbidden"))
	ErrNotAuthentication    = NewErrno(codes.Code(1000), errors.New("not authentication"))
	ErrNotEnrolled          = NewErrno(codes.PermissionDenied, errors.New("student is not enrolled in this classroom"))
	ErrAlreadySubmitted     = NewErrno(codes.AlreadyExists, errors.New("exam has already been submitted"))
	ErrAlreadyMarked        = NewErrno(codes.AlreadyExists, errors.New("submission has already been marked"))
	ErrAlreadyPublished     = NewErrno(codes.AlreadyExists, errors.New("submission has already been published"))
	ErrDuplicateInvigilator = NewErrno(codes.AlreadyExists, errors.New("teacher is already an invigilator for this exam"))
	ErrPauseLimitExceeded   = NewErrno(codes.ResourceExhausted, errors.New("pause limit for this exam has been exhausted"))
	ErrStateViolation       = NewErrno(codes.FailedPrecondition, errors.New("operation not allowed in the submission's current state"))
	ErrNotMarked            = NewErrno(codes.FailedPrecondition, errors.New("submission has not been marked yet"))
	ErrCreateExam           = NewErrno(codes.Code(1101), errors.New("failed to create exam"))
	ErrAddQuestion          = NewErrno(codes.Code(1102), errors.New("failed to add question"))
	ErrStartExam            = NewErrno(codes.Code(1103), errors.New("failed to start exam"))
	ErrSubmitAnswer         = NewErrno(codes.Code(1104), errors.New("failed to submit answer"))
	ErrMarkSubmission       = NewErrno(codes.Code(1105), errors.New("failed to mark submission"))
	ErrPublishResult        = NewErrno(codes.Code(1106), errors.New("failed to publish result to report card"))
	ErrListSubmissions      = NewErrno(codes.Code(1107), errors.New("failed to list submissions"))
	ErrListEvents           = NewErrno(codes.Code(1108), errors.New("failed to list exam events"))
)

// ErrInvalidParams request-time errors
var (
	ErrInvalidParams = NewErrno(codes.InvalidArgument, errors.New("invalid parameters"))
)

// database errors
var (
	ErrNotFound        = NewErrno(codes.NotFound, errors.New("not found"))
	ErrInvalidObjectId = NewErrno(codes.InvalidArgument, errors.New("invalid id"))
	ErrUpdate          = NewErrno(codes.Code(2001), errors.New("update failed"))
)
