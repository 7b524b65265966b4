// Package cli parses chargen command flags and runs the interactive generator.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/glog-chargen/internal/platform/errors"
	entrypoint "github.com/louisbranch/glog-chargen/internal/platform/cmd"
	platformi18n "github.com/louisbranch/glog-chargen/internal/platform/i18n"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/domain/character"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/domain/ruleset"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/generation"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/render"
	"golang.org/x/text/message"
)

// errInputClosed reports that input ended before a prompt was answered.
var errInputClosed = errors.New("input closed before a value was entered")

// Config holds CLI command configuration.
type Config struct {
	RulesetPath string `env:"GLOG_CHARGEN_RULESET_PATH"`
	OutputDir   string `env:"GLOG_CHARGEN_OUTPUT_DIR" envDefault:"."`
	Seed        uint64 `env:"GLOG_CHARGEN_SEED"`
	Lang        string `env:"GLOG_CHARGEN_LANG"       envDefault:"en-US"`
	// Level and Count skip their prompts when non-zero.
	Level int
	Count int
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.Load(&cfg, fs, args, bindFlags); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.RulesetPath, "ruleset", cfg.RulesetPath, "YAML ruleset file (default: embedded ruleset)")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Directory for the exported YAML file")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for a reproducible batch (0 picks a random seed)")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "Language for prompts and output")
	fs.IntVar(&cfg.Level, "level", cfg.Level, "Character level (prompted when 0)")
	fs.IntVar(&cfg.Count, "count", cfg.Count, "Number of characters (prompted when 0)")
}

// Run generates one batch, prompting on stdin for anything the flags left out.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCLI, func(ctx context.Context) error {
		return run(ctx, cfg, os.Stdin, os.Stdout)
	})
}

func run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	tag, _ := platformi18n.ParseTag(cfg.Lang)
	locale := platformi18n.LocaleString(tag)
	printer := platformi18n.Printer(tag)

	rules, err := ruleset.LoadFile(cfg.RulesetPath)
	if err != nil {
		return userError(err, locale)
	}

	banner := printer.Sprintf("cli.banner")
	fmt.Fprintln(out, banner)
	fmt.Fprintln(out, strings.Repeat("=", len([]rune(banner))))

	scanner := bufio.NewScanner(in)
	level, err := resolveInt(scanner, out, printer, locale, cfg.Level,
		printer.Sprintf("cli.prompt.level", character.MinLevel, character.MaxLevel), character.CheckLevel)
	if err != nil {
		return err
	}
	count, err := resolveInt(scanner, out, printer, locale, cfg.Count,
		printer.Sprintf("cli.prompt.count"), character.CheckCount)
	if err != nil {
		return err
	}

	req := generation.Request{Level: level, Count: count}
	if cfg.Seed != 0 {
		seed := cfg.Seed
		req.Seed = &seed
	}
	result, err := generation.NewService(rules).Generate(ctx, req)
	if err != nil {
		return userError(err, locale)
	}

	if err := render.WriteText(out, printer, result.Characters); err != nil {
		return fmt.Errorf("write characters: %w", err)
	}
	path, err := render.SaveFile(cfg.OutputDir, level, count, result.Characters)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, printer.Sprintf("cli.generated", len(result.Characters)))
	fmt.Fprintln(out, printer.Sprintf("cli.saved", path))
	fmt.Fprintln(out, printer.Sprintf("cli.seed", strconv.FormatInt(result.SeedUsed, 10), string(result.SeedSource)))
	return nil
}

// resolveInt returns preset when set, failing if check rejects it. Otherwise
// it prompts until a number passing check is entered.
func resolveInt(scanner *bufio.Scanner, out io.Writer, printer *message.Printer, locale string, preset int, prompt string, check func(int) error) (int, error) {
	if preset != 0 {
		if err := check(preset); err != nil {
			return 0, userError(err, locale)
		}
		return preset, nil
	}
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, fmt.Errorf("read input: %w", err)
			}
			return 0, errInputClosed
		}
		value, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintln(out, printer.Sprintf("cli.invalid.number"))
			continue
		}
		if err := check(value); err != nil {
			fmt.Fprintln(out, apperrors.UserMessage(err, locale))
			continue
		}
		return value, nil
	}
}

// userError replaces a domain error message with its localized form.
func userError(err error, locale string) error {
	if _, ok := apperrors.As(err); !ok {
		return err
	}
	return fmt.Errorf("%s: %w", apperrors.UserMessage(err, locale), err)
}
