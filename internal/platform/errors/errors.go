package errors

import (
	stderrors "errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

// Domain scopes the ErrorInfo details this module attaches to statuses.
const Domain = "github.com/louisbranch/glog-chargen"

// Error is a coded domain failure.
//
// Message is for logs. Users see the catalog template for Code rendered
// with Metadata. Two Errors match under errors.Is when their codes match,
// so package sentinels compare equal to the detailed errors built from them.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Cause }

// Is matches target when it is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// New returns an error with code and a log message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithMetadata returns an error whose user message template receives metadata.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// Wrap returns an error with code that unwraps to cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if !stderrors.As(err, &e) {
		return nil, false
	}
	return e, true
}

// GetCode returns the code of the first *Error in err's chain, or CodeUnknown.
func GetCode(err error) Code {
	if e, ok := As(err); ok {
		return e.Code
	}
	return CodeUnknown
}

// ToGRPCStatus builds a status carrying Message as its text, plus an
// ErrorInfo with code and metadata and a LocalizedMessage with userMessage.
func (e *Error) ToGRPCStatus(locale, userMessage string) error {
	base := status.New(e.Code.GRPCCode(), e.Message)
	detailed, err := base.WithDetails(
		&errdetails.ErrorInfo{Reason: string(e.Code), Domain: Domain, Metadata: e.Metadata},
		&errdetails.LocalizedMessage{Locale: locale, Message: userMessage},
	)
	if err != nil {
		return base.Err()
	}
	return detailed.Err()
}

// FromGRPCStatus recovers the *Error and localized message encoded by
// ToGRPCStatus. It reports false for statuses without this module's ErrorInfo.
func FromGRPCStatus(err error) (*Error, string, bool) {
	st, ok := status.FromError(err)
	if !ok {
		return nil, "", false
	}
	var (
		found       *Error
		userMessage string
	)
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			if d.GetDomain() == Domain {
				found = WithMetadata(Code(d.GetReason()), st.Message(), d.GetMetadata())
			}
		case *errdetails.LocalizedMessage:
			userMessage = d.GetMessage()
		}
	}
	if found == nil {
		return nil, "", false
	}
	return found, userMessage, true
}
