// Package generation runs character generation requests for every host.
//
// Each request resolves its own seed and builds a call-local generator, so
// concurrent requests never share a random source.
package generation

import (
	"context"

	platformotel "github.com/louisbranch/glog-chargen/internal/platform/otel"
	"github.com/louisbranch/glog-chargen/internal/platform/random"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/domain/character"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/domain/ruleset"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Request asks for Count characters at Level. A nil Seed lets the service pick one.
type Request struct {
	Level int
	Count int
	Seed  *uint64
}

// Result is a generated batch plus the seed that reproduces it.
type Result struct {
	Characters []character.Character
	SeedUsed   int64
	SeedSource random.SeedSource
}

// Service generates characters from one validated ruleset.
type Service struct {
	rules   ruleset.Config
	newSeed func() (int64, error)
	tracer  trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithSeedFunc overrides the server-side seed generator.
func WithSeedFunc(newSeed func() (int64, error)) Option {
	return func(s *Service) {
		s.newSeed = newSeed
	}
}

// NewService returns a service for rules. rules must come from ruleset.Validate.
func NewService(rules ruleset.Config, opts ...Option) *Service {
	s := &Service{
		rules:   rules.Clone(),
		newSeed: random.NewSeed,
		tracer:  platformotel.Tracer("generation"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Generate resolves the seed and draws the requested batch.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	_, span := s.tracer.Start(ctx, "chargen.generate", trace.WithAttributes(
		attribute.Int("chargen.level", req.Level),
		attribute.Int("chargen.count", req.Count),
	))
	defer span.End()

	seed, source, err := random.ResolveSeed(req.Seed, s.newSeed)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	span.SetAttributes(
		attribute.Int64("chargen.seed", seed),
		attribute.String("chargen.seed_source", string(source)),
	)

	characters, err := character.NewGenerator(s.rules, random.NewSource(seed)).GenerateMany(req.Level, req.Count)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	return Result{Characters: characters, SeedUsed: seed, SeedSource: source}, nil
}

// Ruleset returns a copy of the ruleset the service draws from.
func (s *Service) Ruleset() ruleset.Config {
	return s.rules.Clone()
}
