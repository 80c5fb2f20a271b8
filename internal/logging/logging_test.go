package logging_test

import (
	"bytes"
	"testing"

	"github.com/davidhbaek/gemini-audio/internal/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		Name      string
		Verbose   bool
		WantLevel zerolog.Level
		WantDebug bool
	}{
		{Name: "Quiet by default", Verbose: false, WantLevel: zerolog.WarnLevel},
		{Name: "Verbose enables debug", Verbose: true, WantLevel: zerolog.DebugLevel, WantDebug: true},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := logging.New(&buf, test.Verbose)
			require.Equal(t, test.WantLevel, logger.GetLevel())

			logger.Debug().Str("model", "gemini-2.5-flash").Msg("sending exchange")
			require.Equal(t, test.WantDebug, bytes.Contains(buf.Bytes(), []byte("sending exchange")))

			logger.Warn().Msg("placeholder credential")
			require.Contains(t, buf.String(), "placeholder credential")
		})
	}
}
