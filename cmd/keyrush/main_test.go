package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/keyrush/internal/config"
	"github.com/verte-zerg/keyrush/internal/model"
	"github.com/verte-zerg/keyrush/internal/store"
)

func TestValidateConfig(t *testing.T) {
	valid := model.Config{DurationSeconds: 15, Durations: []int{15, 30}, FlashDuration: 100 * time.Millisecond}
	if err := validateConfig(valid); err != nil {
		t.Fatalf("expected valid config: %v", err)
	}
	cases := map[string]model.Config{
		"zero duration":   {DurationSeconds: 0, Durations: []int{15}, FlashDuration: time.Millisecond},
		"no presets":      {DurationSeconds: 15, FlashDuration: time.Millisecond},
		"negative preset": {DurationSeconds: 15, Durations: []int{15, -1}, FlashDuration: time.Millisecond},
		"zero flash":      {DurationSeconds: 15, Durations: []int{15}},
	}
	for name, cfg := range cases {
		if err := validateConfig(cfg); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestConfigTemplateRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyrush", "config.toml")
	if err := writeConfigTemplate(path); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.Game.Duration != nil {
		t.Fatalf("template values must be commented out")
	}

	uncommented := strings.ReplaceAll(defaultConfigTemplate(), "# duration =", "duration =")
	if err := os.WriteFile(path, []byte(uncommented), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := writeConfigTemplate(path); err != nil {
		t.Fatalf("rewrite template: %v", err)
	}
	cfg, err = config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Game.Duration == nil || *cfg.Game.Duration != defaultDuration {
		t.Fatalf("existing config must be kept, got %v", cfg.Game.Duration)
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--duration", "45"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	fromFile := 30
	applyIntConfig(cmd, "duration", &gameDuration, &fromFile)
	if gameDuration != 45 {
		t.Fatalf("flag must win over config, got %d", gameDuration)
	}

	presets := []int{10, 20}
	applyIntSliceConfig(cmd, "durations", &gameDurations, presets)
	if len(gameDurations) != 2 || gameDurations[0] != 10 {
		t.Fatalf("config presets must apply when flag unset, got %v", gameDurations)
	}
}

func TestPrintSummary(t *testing.T) {
	st, err := store.Open()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	var buf bytes.Buffer
	if err := printSummary(context.Background(), &buf, st); err != nil {
		t.Fatalf("print empty summary: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output without rounds, got %q", buf.String())
	}

	round := model.RoundSummary{DurationSeconds: 15, Correct: 10, Errors: 3, ScorePerMinute: 40}
	if _, err := st.InsertRound(context.Background(), round, []model.LetterStats{{Letter: "A", Correct: 10, Incorrect: 3}}); err != nil {
		t.Fatalf("insert round: %v", err)
	}
	if err := printSummary(context.Background(), &buf, st); err != nil {
		t.Fatalf("print summary: %v", err)
	}
	if !strings.Contains(buf.String(), "Best SPM: 40") {
		t.Fatalf("unexpected summary: %s", buf.String())
	}
}
