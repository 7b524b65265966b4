package errors

import (
	"github.com/louisbranch/glog-chargen/internal/platform/errors/i18n"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultLocale renders messages when the caller names no locale.
const DefaultLocale = "en-US"

// unexpectedMessage is the status text for errors that carry no code.
const unexpectedMessage = "an unexpected error occurred"

// HandleError converts err into the status returned to gRPC callers. Domain
// errors keep their code and gain a message localized for locale. Anything
// else becomes a bare Internal status so no internal detail leaks.
func HandleError(err error, locale string) error {
	if err == nil {
		return nil
	}
	e, ok := As(err)
	if !ok {
		return status.Error(codes.Internal, unexpectedMessage)
	}
	catalog := i18n.GetCatalog(localeOrDefault(locale))
	return e.ToGRPCStatus(catalog.Locale(), catalog.Format(string(e.Code), e.Metadata))
}

// UserMessage renders err for end users in locale. Uncoded errors render
// the CodeUnknown message.
func UserMessage(err error, locale string) string {
	catalog := i18n.GetCatalog(localeOrDefault(locale))
	e, ok := As(err)
	if !ok {
		return catalog.Format(string(CodeUnknown), nil)
	}
	return catalog.Format(string(e.Code), e.Metadata)
}

func localeOrDefault(locale string) string {
	if locale == "" {
		return DefaultLocale
	}
	return locale
}
