package cli

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/glog-chargen/internal/services/chargen/domain/character"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/domain/ruleset"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/render"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("chargen", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.OutputDir != "." {
		t.Fatalf("OutputDir = %q, want %q", cfg.OutputDir, ".")
	}
	if cfg.Lang != "en-US" {
		t.Fatalf("Lang = %q, want en-US", cfg.Lang)
	}
	if cfg.RulesetPath != "" || cfg.Seed != 0 || cfg.Level != 0 || cfg.Count != 0 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("GLOG_CHARGEN_RULESET_PATH", "env.yaml")
	t.Setenv("GLOG_CHARGEN_OUTPUT_DIR", "env-out")
	t.Setenv("GLOG_CHARGEN_SEED", "12")

	fs := flag.NewFlagSet("chargen", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-out", "flag-out", "-level", "4", "-count", "2", "-lang", "pt-BR"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.RulesetPath != "env.yaml" {
		t.Fatalf("RulesetPath = %q, want env.yaml", cfg.RulesetPath)
	}
	if cfg.OutputDir != "flag-out" {
		t.Fatalf("OutputDir = %q, want flag-out", cfg.OutputDir)
	}
	if cfg.Seed != 12 {
		t.Fatalf("Seed = %d, want 12", cfg.Seed)
	}
	if cfg.Level != 4 || cfg.Count != 2 || cfg.Lang != "pt-BR" {
		t.Fatalf("unexpected flags: %+v", cfg)
	}
}

func TestParseConfigRejectsBadSeed(t *testing.T) {
	t.Setenv("GLOG_CHARGEN_SEED", "-1")
	fs := flag.NewFlagSet("chargen", flag.ContinueOnError)
	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("expected env parse error")
	}
}

func TestRunPromptsUntilValid(t *testing.T) {
	dir := t.TempDir()
	in := strings.NewReader("abc\n0\n11\n3\nmany\n0\n2\n")
	var out bytes.Buffer

	err := run(context.Background(), Config{OutputDir: dir, Seed: 17, Lang: "en-US"}, in, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"GLOG v2 Character Generator (CLI)",
		"Enter character level (1-10): ",
		"Please enter a valid number.",
		"Level must be between 1 and 10",
		"Enter number of characters to generate: ",
		"Must generate at least 1 character",
		"Character 1:",
		"Character 2:",
		"Level: 3",
		"Ability Scores:",
		"  Strength: ",
		"2 character(s) generated successfully!",
		"Characters saved to: " + filepath.Join(dir, "characters_level_3_count_2.yaml"),
		"Seed: 17 (CLIENT)",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Character 3:") {
		t.Fatalf("output has a third character:\n%s", got)
	}
	if n := strings.Count(got, "Please enter a valid number."); n != 2 {
		t.Fatalf("invalid number notices = %d, want 2", n)
	}

	f, err := os.Open(filepath.Join(dir, render.ExportFileName(3, 2)))
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	saved, err := render.ReadYAML(f)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(saved) != 2 || saved[0].Level != 3 {
		t.Fatalf("saved = %+v", saved)
	}
}

func TestRunIsReproducibleWithSeed(t *testing.T) {
	read := func(t *testing.T) []character.Character {
		t.Helper()
		dir := t.TempDir()
		var out bytes.Buffer
		if err := run(context.Background(), Config{OutputDir: dir, Seed: 99, Level: 5, Count: 4}, strings.NewReader(""), &out); err != nil {
			t.Fatalf("run: %v", err)
		}
		f, err := os.Open(filepath.Join(dir, render.ExportFileName(5, 4)))
		if err != nil {
			t.Fatalf("open export: %v", err)
		}
		defer f.Close()
		saved, err := render.ReadYAML(f)
		if err != nil {
			t.Fatalf("read export: %v", err)
		}
		return saved
	}

	first, second := read(t), read(t)
	if len(first) != 4 || len(second) != 4 {
		t.Fatalf("lengths = %d/%d, want 4", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("character %d = %+v, want %+v", i, second[i], first[i])
		}
	}
}

func TestRunFlagsSkipPrompts(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), Config{OutputDir: t.TempDir(), Level: 2, Count: 1}, strings.NewReader(""), &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Contains(out.String(), "Enter character level") {
		t.Fatalf("unexpected prompt:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "(SERVER)") {
		t.Fatalf("expected server seed source:\n%s", out.String())
	}
}

func TestRunRejectsInvalidFlags(t *testing.T) {
	tcs := []struct {
		name string
		cfg  Config
		want error
	}{
		{name: "level", cfg: Config{Level: 11, Count: 1}, want: character.ErrLevelOutOfRange},
		{name: "count", cfg: Config{Level: 1, Count: 101}, want: character.ErrCountTooHigh},
		{name: "negative count", cfg: Config{Level: 1, Count: -3}, want: character.ErrCountTooLow},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.OutputDir = t.TempDir()
			var out bytes.Buffer
			err := run(context.Background(), tc.cfg, strings.NewReader(""), &out)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestRunInputClosed(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), Config{OutputDir: t.TempDir()}, strings.NewReader("abc\n"), &out)
	if !errors.Is(err, errInputClosed) {
		t.Fatalf("err = %v, want %v", err, errInputClosed)
	}
}

func TestRunLoadsRulesetFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	doc := "races: [Dwarf]\nclasses: [Wizard]\nwizard_archetypes: [Illusionist]\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write ruleset: %v", err)
	}

	var out bytes.Buffer
	err := run(context.Background(), Config{RulesetPath: path, OutputDir: dir, Level: 1, Count: 2}, strings.NewReader(""), &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n := strings.Count(out.String(), "Class: Wizard (Illusionist)"); n != 2 {
		t.Fatalf("wizard lines = %d, want 2:\n%s", n, out.String())
	}
	if !strings.Contains(out.String(), "Race: Dwarf") {
		t.Fatalf("missing race:\n%s", out.String())
	}
}

func TestRunRejectsInvalidRuleset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	if err := os.WriteFile(path, []byte("races: []\nclasses: [Fighter]\nwizard_archetypes: [Necromancer]\n"), 0o600); err != nil {
		t.Fatalf("write ruleset: %v", err)
	}
	var out bytes.Buffer
	err := run(context.Background(), Config{RulesetPath: path, OutputDir: dir, Level: 1, Count: 1}, strings.NewReader(""), &out)
	if !errors.Is(err, ruleset.ErrEmptyRaces) {
		t.Fatalf("err = %v, want %v", err, ruleset.ErrEmptyRaces)
	}
	if !strings.Contains(err.Error(), "Config file must contain at least one race") {
		t.Fatalf("err = %q, want localized message", err.Error())
	}
}

func TestRunLocalizesPrompts(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), Config{OutputDir: t.TempDir(), Lang: "pt-BR"}, strings.NewReader("x\n12\n1\n1\n"), &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{
		"Gerador de Personagens GLOG v2 (CLI)",
		"Informe o nível do personagem (1-10): ",
		"Por favor, informe um número válido.",
		"O nível deve estar entre 1 e 10",
		"Personagem 1:",
		"1 personagem(ns) gerado(s) com sucesso!",
	} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunReportsMissingOutputDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	var out bytes.Buffer
	if err := run(context.Background(), Config{OutputDir: missing, Level: 1, Count: 1}, strings.NewReader(""), &out); err == nil {
		t.Fatal("expected export error")
	}
}
