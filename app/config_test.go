package app

import (
	"os"
	"path/filepath"
	"testing"
)

func resetConfigFlags() {
	confFile = ""
	viterbi = false
	exhaustive = false
	bufferSize = 0
}

func TestParseConfig(t *testing.T) {
	data := []byte("chart: viterbi\nworkers: 4\nexhaustive: true\nbuffer: 64\n")
	config, err := ParseConfig(data)
	if err != nil {
		t.Fatal(err)
	}
	if config.Chart != "viterbi" || config.Workers != 4 || !config.Exhaustive || config.Buffer != 64 {
		t.Errorf("Expected parsed config, got %+v", config)
	}
}

func TestParseConfigError(t *testing.T) {
	if _, err := ParseConfig([]byte("chart: [")); err == nil {
		t.Errorf("Expected error for malformed config")
	}
}

func TestResolveConfigDefaults(t *testing.T) {
	defer resetConfigFlags()
	resetConfigFlags()
	cmd := MarginalsCmd()
	config, err := resolveConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if config.Chart != "logsum" {
		t.Errorf("Expected default chart logsum, got %s", config.Chart)
	}
	if config.Workers != 0 || config.Exhaustive || config.Buffer != 0 {
		t.Errorf("Expected zero defaults, got %+v", config)
	}
}

func TestResolveConfigFlagsWin(t *testing.T) {
	defer resetConfigFlags()
	resetConfigFlags()
	filename := filepath.Join(t.TempDir(), "conf.yaml")
	if err := os.WriteFile(filename, []byte("chart: logsum\nworkers: 4\nbuffer: 64\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cmd := MarginalsCmd()
	if err := cmd.Flag.Parse([]string{"-conf", filename, "-buffer", "32", "-viterbi"}); err != nil {
		t.Fatal(err)
	}
	config, err := resolveConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if config.Chart != "viterbi" {
		t.Errorf("Expected flag to override file chart, got %s", config.Chart)
	}
	if config.Buffer != 32 {
		t.Errorf("Expected flag buffer 32, got %d", config.Buffer)
	}
	if config.Workers != 4 {
		t.Errorf("Expected file workers 4, got %d", config.Workers)
	}
}

func TestResolveConfigFileOnly(t *testing.T) {
	defer resetConfigFlags()
	resetConfigFlags()
	filename := filepath.Join(t.TempDir(), "conf.yaml")
	if err := os.WriteFile(filename, []byte("chart: viterbi\nexhaustive: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cmd := MarginalsCmd()
	if err := cmd.Flag.Parse([]string{"-conf", filename}); err != nil {
		t.Fatal(err)
	}
	config, err := resolveConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if config.Chart != "viterbi" || !config.Exhaustive {
		t.Errorf("Expected file values to apply, got %+v", config)
	}
}
