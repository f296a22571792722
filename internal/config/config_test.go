package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heiervang-technologies/supercompact/internal/cerrors"
)

func valid() Compact {
	return Compact{Input: "log.jsonl", Method: "eitf", Budget: 1000, Format: "rollout", ShortThreshold: 300, MinRepeatLen: 64}
}

func TestValidate_AcceptsDefaults(t *testing.T) {
	assert.NoError(t, valid().Validate())
}

func TestValidate_RejectsEmptyInput(t *testing.T) {
	c := valid()
	c.Input = ""
	err := c.Validate()
	require.Error(t, err)
	var invalidArg *cerrors.InvalidArgument
	require.ErrorAs(t, err, &invalidArg)
	assert.Equal(t, "input", invalidArg.Name)
}

func TestValidate_RejectsNonPositiveBudget(t *testing.T) {
	c := valid()
	c.Budget = 0
	err := c.Validate()
	require.Error(t, err)
	var invalidArg *cerrors.InvalidArgument
	require.ErrorAs(t, err, &invalidArg)
	assert.Equal(t, "budget", invalidArg.Name)
}

func TestValidate_RejectsUnknownMethod(t *testing.T) {
	c := valid()
	c.Method = "magic"
	err := c.Validate()
	require.Error(t, err)
	var invalidArg *cerrors.InvalidArgument
	require.ErrorAs(t, err, &invalidArg)
	assert.Equal(t, "method", invalidArg.Name)
}

func TestValidate_RejectsUnknownFormat(t *testing.T) {
	c := valid()
	c.Format = "xml"
	assert.Error(t, c.Validate())
}

func TestNewViper_DefaultsPopulated(t *testing.T) {
	v := NewViper()
	assert.Equal(t, "eitf", v.GetString("method"))
	assert.Equal(t, "rollout", v.GetString("format"))
	assert.Equal(t, 300, v.GetInt("short-threshold"))
}
