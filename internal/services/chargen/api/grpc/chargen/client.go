package chargen

import (
	"context"

	apperrors "github.com/louisbranch/glog-chargen/internal/platform/errors"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/domain/ruleset"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/generation"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls a remote CharacterService.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient returns a client using cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// WithLocale asks the server to localize error messages for locale.
func WithLocale(ctx context.Context, locale string) context.Context {
	if locale == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, LocaleMetadataKey, locale)
}

// WithRequestID tags outgoing calls with a correlation id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, RequestIDMetadataKey, requestID)
}

// Generate requests a batch of characters.
//
// Domain failures come back as *errors.Error carrying the server code and the
// localized message, so errors.Is matches the generator sentinels.
func (c *Client) Generate(ctx context.Context, req generation.Request, opts ...grpc.CallOption) (generation.Result, error) {
	in, err := encodeGenerateRequest(req)
	if err != nil {
		return generation.Result{}, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, generateCharactersMethod, in, out, opts...); err != nil {
		return generation.Result{}, decodeError(err)
	}
	return decodeGenerateResponse(out)
}

// DescribeRuleset fetches the server ruleset.
func (c *Client) DescribeRuleset(ctx context.Context, opts ...grpc.CallOption) (ruleset.Config, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, describeRulesetMethod, &structpb.Struct{}, out, opts...); err != nil {
		return ruleset.Config{}, decodeError(err)
	}
	return decodeRuleset(out), nil
}

func decodeError(err error) error {
	domainErr, userMessage, ok := apperrors.FromGRPCStatus(err)
	if !ok {
		return err
	}
	if userMessage != "" {
		domainErr.Message = userMessage
	}
	domainErr.Cause = err
	return domainErr
}
