// Package config resolves the CLI's settings from flags layered over
// environment variables, and validates the result into typed errors rather
// than letting bad values surface deep in the pipeline.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/heiervang-technologies/supercompact/internal/cerrors"
)

// EnvPrefix namespaces every SUPERCOMPACT_* environment variable this CLI
// reads.
const EnvPrefix = "SUPERCOMPACT"

// Compact holds the resolved settings for a single `compact` invocation.
type Compact struct {
	Input          string
	Output         string
	Method         string
	Budget         int
	Format         string
	ShortThreshold int
	MinRepeatLen   int
	ScoresFile     string
	Verbose        bool
}

// ValidMethods lists the scorer names --method accepts.
var ValidMethods = []string{"eitf", "setcover", "dedup", "dry-run"}

// ValidFormats lists the emitter dialects --format accepts.
var ValidFormats = []string{"rollout", "summary"}

// NewViper returns a viper instance pre-bound to SUPERCOMPACT_* environment
// variables, with defaults layered beneath them and explicit flags taking
// precedence over both once bound by the caller.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("method", "eitf")
	v.SetDefault("budget", 80000)
	v.SetDefault("format", "rollout")
	v.SetDefault("short-threshold", 300)
	v.SetDefault("min-repeat-len", 64)
	return v
}

// Validate rejects settings that would otherwise fail deep inside the
// pipeline, turning them into a typed InvalidArgument up front.
func (c Compact) Validate() error {
	if c.Input == "" {
		return cerrors.NewInvalidArgument("input", "must not be empty")
	}
	if c.Budget <= 0 {
		return cerrors.NewInvalidArgument("budget", "must be a positive integer")
	}
	if !contains(ValidMethods, c.Method) {
		return cerrors.NewInvalidArgument("method", "must be one of: "+strings.Join(ValidMethods, ", "))
	}
	if !contains(ValidFormats, c.Format) {
		return cerrors.NewInvalidArgument("format", "must be one of: "+strings.Join(ValidFormats, ", "))
	}
	if c.ShortThreshold < 0 {
		return cerrors.NewInvalidArgument("short-threshold", "must not be negative")
	}
	if c.MinRepeatLen <= 0 {
		return cerrors.NewInvalidArgument("min-repeat-len", "must be a positive integer")
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
