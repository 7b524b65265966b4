package chargen

import (
	"context"
	"log"
	"strings"

	apperrors "github.com/louisbranch/glog-chargen/internal/platform/errors"
	platformi18n "github.com/louisbranch/glog-chargen/internal/platform/i18n"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/domain/ruleset"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/generation"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// LocaleMetadataKey carries the caller's preferred language.
	LocaleMetadataKey = "accept-language"
	// RequestIDMetadataKey carries the caller's correlation id.
	RequestIDMetadataKey = "x-request-id"
)

// Generator is the generation surface the service needs.
type Generator interface {
	Generate(ctx context.Context, req generation.Request) (generation.Result, error)
	Ruleset() ruleset.Config
}

// Service implements CharacterServiceServer.
type Service struct {
	gen Generator
}

// NewService returns a character service backed by gen.
func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

// GenerateCharacters draws a batch of characters.
func (s *Service) GenerateCharacters(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	locale := localeFromContext(ctx)
	req, err := decodeGenerateRequest(in)
	if err != nil {
		return nil, apperrors.HandleError(err, locale)
	}
	result, err := s.gen.Generate(ctx, req)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.CodeUnknown {
			log.Printf("grpc generate failed method=%s request_id=%s err=%v", generateCharactersMethod, requestIDFromContext(ctx), err)
		}
		return nil, apperrors.HandleError(err, locale)
	}
	out, err := encodeGenerateResponse(result)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode characters: %v", err)
	}
	return out, nil
}

// DescribeRuleset returns the lists characters are drawn from.
func (s *Service) DescribeRuleset(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	out, err := encodeRuleset(s.gen.Ruleset())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode ruleset: %v", err)
	}
	return out, nil
}

// localeFromContext resolves the caller locale from incoming metadata.
func localeFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return apperrors.DefaultLocale
	}
	values := md.Get(LocaleMetadataKey)
	if len(values) == 0 {
		return apperrors.DefaultLocale
	}
	return platformi18n.LocaleString(platformi18n.ResolveAcceptLanguage(strings.Join(values, ",")))
}

func requestIDFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "-"
	}
	if values := md.Get(RequestIDMetadataKey); len(values) > 0 && values[0] != "" {
		return values[0]
	}
	return "-"
}
