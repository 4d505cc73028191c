package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/flowgrid/config"
)

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowgrid.log")
	log, closer, err := Setup(config.LogConfig{Level: "debug", Format: "json", File: path, MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	log.WithField("version", 3).Debug("flow field rebuilt")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"flow field rebuilt"`) || !strings.Contains(string(data), `"version":3`) {
		t.Errorf("unexpected log contents: %s", data)
	}
}

func TestSetupStderr(t *testing.T) {
	log, closer, err := Setup(config.LogConfig{Level: "warn"})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer closer.Close()
	if log.GetLevel() != logrus.WarnLevel {
		t.Errorf("level = %v", log.GetLevel())
	}
}

func TestSetupRejectsBadInput(t *testing.T) {
	if _, _, err := Setup(config.LogConfig{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
	if _, _, err := Setup(config.LogConfig{Level: "info", Format: "xml"}); err == nil {
		t.Error("expected error for unknown format")
	}
}
