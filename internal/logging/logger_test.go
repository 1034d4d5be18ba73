package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetup_Level(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		got := Setup(tt.input, &buf)
		assert.Equal(t, tt.want, got, "Setup(%q)", tt.input)
		assert.Equal(t, tt.want, zerolog.GlobalLevel())
	}
}

func TestComponent(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	Setup("debug", &buf)

	l := Component("store")
	l.Info().Msg("opened")

	assert.Contains(t, buf.String(), "cmp=store")
	assert.Contains(t, buf.String(), "opened")
}
