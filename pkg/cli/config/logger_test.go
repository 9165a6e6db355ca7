package config_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/vcpkg-release/pkg/cli/config"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/types"
)

func TestLogger_Configure(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "Valid level: debug", level: "debug"},
		{name: "Valid level: DEBUG (case insensitive)", level: "DEBUG"},
		{name: "Valid level: info", level: "info"},
		{name: "Valid level: warn", level: "warn"},
		{name: "Valid level: WARN", level: "WARN"},
		{name: "Valid level: error", level: "error"},
		{name: "Invalid level: invalid", level: "invalid", wantErr: true},
		{name: "Invalid level: empty string", level: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Logger{Level: tt.level}
			cfg.SetWriter(&bytes.Buffer{})

			logger, err := cfg.Configure()
			if tt.wantErr {
				gt.Error(t, err)
				gt.True(t, goerr.HasTag(err, types.ErrTagConfiguration))
				return
			}
			gt.NoError(t, err)
			gt.Value(t, logger).NotNil()
		})
	}
}

func TestLogger_Configure_MasksToken(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Logger{Level: "info", JSON: true}
	cfg.SetWriter(&buf)

	logger, err := cfg.Configure()
	gt.NoError(t, err)

	logger.Info("starting", "credentials", model.Credentials{Account: "release-bot", Token: "ghp_supersecret"})
	gt.S(t, buf.String()).Contains("release-bot")
	gt.S(t, buf.String()).NotContains("ghp_supersecret")
}

func TestLogger_Configure_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Logger{Level: "warn", JSON: true}
	cfg.SetWriter(&buf)

	logger, err := cfg.Configure()
	gt.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "port", "jsonifier")

	var record map[string]any
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	gt.Value(t, record["msg"]).Equal("kept")
	gt.Value(t, record["port"]).Equal("jsonifier")
}

func TestLogger_Flags(t *testing.T) {
	cfg := &config.Logger{}
	flags := cfg.Flags()
	gt.A(t, flags).Length(2)

	names := map[string]bool{}
	for _, f := range flags {
		names[f.Names()[0]] = true
	}
	gt.True(t, names["log-level"])
	gt.True(t, names["log-json"])
}
