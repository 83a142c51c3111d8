package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	args := []string{"-a", "http://localhost:9000", "-x", "junk"}
	got := FilterArgs(args, []string{"-a"})
	assert.Equal(t, []string{"-a", "http://localhost:9000"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	args := []string{"--addr=http://localhost:9000", "--other=1"}
	got := FilterArgs(args, []string{"--addr"})
	assert.Equal(t, []string{"--addr=http://localhost:9000"}, got)
}

func TestFilterArgs_FlagFollowedByFlag(t *testing.T) {
	args := []string{"-v", "-a", "x"}
	got := FilterArgs(args, []string{"-v"})
	assert.Equal(t, []string{"-v"}, got)
}

func TestFilterArgs_NothingAllowed(t *testing.T) {
	got := FilterArgs([]string{"-a", "1"}, nil)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}
