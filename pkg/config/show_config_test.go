package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gonewx/fireworks/pkg/shell"
)

func TestDefaultShowConfigIsValid(t *testing.T) {
	cfg := DefaultShowConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	for _, name := range []string{shell.SoundLift, shell.SoundBurst, shell.SoundBurstSmall, shell.SoundCrackle, shell.SoundCrackleSmall} {
		if _, ok := cfg.Sounds.Sources[name]; !ok {
			t.Errorf("default config missing sound %q", name)
		}
	}
}

func TestShippedShowConfig(t *testing.T) {
	cfg, err := LoadShowConfig(filepath.Join("..", "..", "data", "show.yaml"))
	if err != nil {
		t.Fatalf("data/show.yaml: %v", err)
	}
	if cfg.Stage.Width != 1280 || cfg.Stage.Height != 720 {
		t.Errorf("stage = %dx%d", cfg.Stage.Width, cfg.Stage.Height)
	}
	if got := cfg.Sounds.Sources[shell.SoundBurstSmall].Volume; got != 0.25 {
		t.Errorf("burstSmall volume = %v, want 0.25", got)
	}
}

func TestParseShowConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *ShowConfig)
	}{
		{
			name: "partial override keeps defaults",
			yamlContent: `
quality: low
shellType: Willow
words:
  chance: 0.5
  fontSize: { min: 40, max: 60 }
`,
			validate: func(t *testing.T, cfg *ShowConfig) {
				if cfg.Quality != "low" || cfg.ShellType != shell.TypeWillow {
					t.Errorf("quality/type = %q/%q", cfg.Quality, cfg.ShellType)
				}
				if cfg.Stage.Width != 1280 {
					t.Errorf("stage width default lost: %d", cfg.Stage.Width)
				}
				if cfg.Words.Chance != 0.5 || cfg.Words.FontSize.Min != 40 {
					t.Errorf("words = %+v", cfg.Words)
				}
				if len(cfg.Words.List) == 0 || len(cfg.Sounds.Sources) != 5 {
					t.Errorf("defaults lost: words=%d sounds=%d", len(cfg.Words.List), len(cfg.Sounds.Sources))
				}
			},
		},
		{
			name:        "zero stage",
			yamlContent: "stage: { width: 0, height: 720 }",
			wantErr:     true,
			errContains: "stage size",
		},
		{
			name:        "unknown quality",
			yamlContent: "quality: ultra",
			wantErr:     true,
			errContains: "quality",
		},
		{
			name:        "unknown sky lighting",
			yamlContent: "skyLighting: bright",
			wantErr:     true,
			errContains: "sky lighting",
		},
		{
			name:        "unknown shell type",
			yamlContent: "shellType: Peony",
			wantErr:     true,
			errContains: "Peony",
		},
		{
			name:        "shell size too large",
			yamlContent: "shellSize: 9",
			wantErr:     true,
			errContains: "shell size",
		},
		{
			name:        "word chance above one",
			yamlContent: "words: { chance: 1.5 }",
			wantErr:     true,
			errContains: "word chance",
		},
		{
			name:        "inverted font size",
			yamlContent: "words: { fontSize: { min: 90, max: 50 } }",
			wantErr:     true,
			errContains: "font size",
		},
		{
			name: "sound without files",
			yamlContent: `
sounds:
  sources:
    pop:
      volume: 1
      playbackRate: { min: 1, max: 1 }
`,
			wantErr:     true,
			errContains: `"pop" has no files`,
		},
		{
			name: "inverted playback rate",
			yamlContent: `
sounds:
  sources:
    pop:
      volume: 1
      playbackRate: { min: 1.2, max: 0.8 }
      files: [pop.mp3]
`,
			wantErr:     true,
			errContains: "playback rate",
		},
		{
			name:        "malformed yaml",
			yamlContent: "stage: [1, 2",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseShowConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestValidateWrapsSentinel(t *testing.T) {
	cfg := DefaultShowConfig()
	cfg.ShellType = "Peony"
	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidShowConfig) {
		t.Errorf("error %v does not wrap ErrInvalidShowConfig", err)
	}
	if !errors.Is(err, shell.ErrUnknownShellType) {
		t.Errorf("error %v does not wrap ErrUnknownShellType", err)
	}
}

func TestLoadShowConfigMissingFile(t *testing.T) {
	_, err := LoadShowConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadShowConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "show.yaml")
	if err := os.WriteFile(path, []byte("finale: true\nshellSize: 1.5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadShowConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Finale || cfg.ShellSize != 1.5 {
		t.Errorf("finale=%v size=%v", cfg.Finale, cfg.ShellSize)
	}
}

func TestQualityNames(t *testing.T) {
	for _, q := range []shell.Quality{shell.QualityLow, shell.QualityNormal, shell.QualityHigh} {
		got, err := ParseQuality(QualityName(q))
		if err != nil || got != q {
			t.Errorf("round trip %v -> %q -> %v (%v)", q, QualityName(q), got, err)
		}
	}
	if lvl, err := ParseSkyLighting("dim"); err != nil || lvl != 1 {
		t.Errorf("ParseSkyLighting(dim) = %d, %v", lvl, err)
	}
}

func TestSimulationOptions(t *testing.T) {
	cfg := DefaultShowConfig()
	cfg.Quality = "low"
	sim := shell.NewSimulation(cfg.SimulationOptions()...)
	if sim.Quality() != shell.QualityLow {
		t.Errorf("quality = %v, want low", sim.Quality())
	}
}
