package domain

import (
	"context"
	"fmt"
	"strconv"

	"github.com/louisbranch/glog-chargen/internal/services/chargen/domain/character"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/domain/ruleset"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/generation"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CharacterClient is the character service surface the tools call.
type CharacterClient interface {
	Generate(ctx context.Context, req generation.Request) (generation.Result, error)
	DescribeRuleset(ctx context.Context) (ruleset.Config, error)
}

// GenerateCharactersInput represents the MCP tool input for generating characters.
type GenerateCharactersInput struct {
	Level int     `json:"level" jsonschema:"character level from 1 to 10"`
	Count int     `json:"count" jsonschema:"number of characters to generate from 1 to 100"`
	Seed  *uint64 `json:"seed,omitempty" jsonschema:"optional seed to reproduce a previous batch"`
}

// AbilityScoresResult holds the six ability scores of a generated character.
type AbilityScoresResult struct {
	Strength     int `json:"strength" jsonschema:"strength score"`
	Dexterity    int `json:"dexterity" jsonschema:"dexterity score"`
	Constitution int `json:"constitution" jsonschema:"constitution score"`
	Intelligence int `json:"intelligence" jsonschema:"intelligence score"`
	Wisdom       int `json:"wisdom" jsonschema:"wisdom score"`
	Charisma     int `json:"charisma" jsonschema:"charisma score"`
}

// CharacterResult represents one generated character.
type CharacterResult struct {
	Level         int                 `json:"level" jsonschema:"character level"`
	Class         string              `json:"class" jsonschema:"class name, wizards include their archetype"`
	Race          string              `json:"race" jsonschema:"character race"`
	AbilityScores AbilityScoresResult `json:"ability_scores" jsonschema:"3d6 ability scores"`
}

// GenerateCharactersResult represents the MCP tool output for generating characters.
type GenerateCharactersResult struct {
	Characters []CharacterResult `json:"characters" jsonschema:"generated characters in draw order"`
	SeedUsed   string            `json:"seed_used" jsonschema:"decimal seed that reproduces this batch"`
	SeedSource string            `json:"seed_source" jsonschema:"CLIENT when the seed was supplied, SERVER otherwise"`
}

// RulesetDescribeInput represents the MCP tool input for describing the ruleset.
type RulesetDescribeInput struct{}

// RulesetDescribeResult represents the lists characters are drawn from.
type RulesetDescribeResult struct {
	Races            []string `json:"races" jsonschema:"races a character can be"`
	Classes          []string `json:"classes" jsonschema:"classes a character can be"`
	WizardArchetypes []string `json:"wizard_archetypes" jsonschema:"archetypes drawn for wizards"`
}

// GenerateCharactersTool defines the MCP tool schema for generating characters.
func GenerateCharactersTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "generate_characters",
		Description: "Generates random GLOG characters at a level, reporting the seed that reproduces them",
	}
}

// RulesetDescribeTool defines the MCP tool schema for ruleset introspection.
func RulesetDescribeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "ruleset_describe",
		Description: "Lists the races, classes, and wizard archetypes characters are drawn from",
	}
}

// GenerateCharactersHandler generates a batch through the character service.
func GenerateCharactersHandler(client CharacterClient) mcp.ToolHandlerFor[GenerateCharactersInput, GenerateCharactersResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenerateCharactersInput) (*mcp.CallToolResult, GenerateCharactersResult, error) {
		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		callCtx, requestID, err := newOutgoingContext(runCtx)
		if err != nil {
			return nil, GenerateCharactersResult{}, fmt.Errorf("create request metadata: %w", err)
		}

		result, err := client.Generate(callCtx, generation.Request{
			Level: input.Level,
			Count: input.Count,
			Seed:  input.Seed,
		})
		if err != nil {
			return nil, GenerateCharactersResult{}, fmt.Errorf("generate characters failed: %w", err)
		}

		output := GenerateCharactersResult{
			Characters: make([]CharacterResult, 0, len(result.Characters)),
			SeedUsed:   strconv.FormatInt(result.SeedUsed, 10),
			SeedSource: string(result.SeedSource),
		}
		for _, c := range result.Characters {
			output.Characters = append(output.Characters, characterResult(c))
		}
		return callToolResultWithRequestID(requestID), output, nil
	}
}

// RulesetDescribeHandler returns the ruleset of the character service.
func RulesetDescribeHandler(client CharacterClient) mcp.ToolHandlerFor[RulesetDescribeInput, RulesetDescribeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ RulesetDescribeInput) (*mcp.CallToolResult, RulesetDescribeResult, error) {
		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		callCtx, requestID, err := newOutgoingContext(runCtx)
		if err != nil {
			return nil, RulesetDescribeResult{}, fmt.Errorf("create request metadata: %w", err)
		}

		rules, err := client.DescribeRuleset(callCtx)
		if err != nil {
			return nil, RulesetDescribeResult{}, fmt.Errorf("describe ruleset failed: %w", err)
		}
		return callToolResultWithRequestID(requestID), RulesetDescribeResult{
			Races:            nonNil(rules.Races),
			Classes:          nonNil(rules.Classes),
			WizardArchetypes: nonNil(rules.WizardArchetypes),
		}, nil
	}
}

func characterResult(c character.Character) CharacterResult {
	return CharacterResult{
		Level: c.Level,
		Class: c.Class.String(),
		Race:  c.Race,
		AbilityScores: AbilityScoresResult{
			Strength:     c.AbilityScores.Strength,
			Dexterity:    c.AbilityScores.Dexterity,
			Constitution: c.AbilityScores.Constitution,
			Intelligence: c.AbilityScores.Intelligence,
			Wisdom:       c.AbilityScores.Wisdom,
			Charisma:     c.AbilityScores.Charisma,
		},
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
