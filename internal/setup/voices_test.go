package setup_test

import (
	"testing"

	"github.com/davidhbaek/gemini-audio/internal/setup"
	"github.com/stretchr/testify/require"
)

func TestSelectVoice(t *testing.T) {
	tests := []struct {
		Name   string
		Choice string
		Want   string
	}{
		{Name: "Empty", Choice: "", Want: "Puck"},
		{Name: "First", Choice: "1", Want: "Puck"},
		{Name: "Third", Choice: "3", Want: "Kore"},
		{Name: "Last", Choice: "8", Want: "Zephyr"},
		{Name: "Padded", Choice: " 5 ", Want: "Aoede"},
		{Name: "Zero", Choice: "0", Want: "Puck"},
		{Name: "Past the end", Choice: "9", Want: "Puck"},
		{Name: "Name", Choice: "Orus", Want: "Orus"},
		{Name: "Name in any case", Choice: "fENRIR", Want: "Fenrir"},
		{Name: "Unknown name", Choice: "Alloy", Want: "Puck"},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			require.Equal(t, test.Want, setup.SelectVoice(test.Choice).Name)
		})
	}
}

func TestGreetingPrompt(t *testing.T) {
	voice := setup.SelectVoice("Leda")

	require.Equal(t,
		"The 'Leda' voice is described as 'Youthful, energetic'. Generate a short 2-sentence greeting that would sound good in this voice style.",
		setup.GreetingPrompt(voice),
	)
}

func TestVoiceCatalogue(t *testing.T) {
	require.Len(t, setup.Voices, 8)
	require.Equal(t, setup.Voices[0], setup.DefaultVoice)
}
