package setup

import (
	"fmt"
	"strconv"
	"strings"
)

// NativeAudioModel serves the voices below over the Live API.
const NativeAudioModel = "gemini-2.5-flash-native-audio-preview-12-2025"

type Voice struct {
	Name        string
	Description string
}

// Voices available to the native audio model.
// https://ai.google.dev/gemini-api/docs/live-guide
var Voices = []Voice{
	{Name: "Puck", Description: "Upbeat, energetic"},
	{Name: "Charon", Description: "Informative, clear"},
	{Name: "Kore", Description: "Firm, confident"},
	{Name: "Fenrir", Description: "Excitable, dynamic"},
	{Name: "Aoede", Description: "Breezy, natural"},
	{Name: "Leda", Description: "Youthful, energetic"},
	{Name: "Orus", Description: "Firm, decisive"},
	{Name: "Zephyr", Description: "Bright, cheerful"},
}

// DefaultVoice is used whenever a choice does not name a voice.
var DefaultVoice = Voices[0]

// SelectVoice accepts a 1-based position in Voices or a voice name in any
// letter case. Anything else falls back to DefaultVoice.
func SelectVoice(choice string) Voice {
	choice = strings.TrimSpace(choice)

	if n, err := strconv.Atoi(choice); err == nil {
		if n >= 1 && n <= len(Voices) {
			return Voices[n-1]
		}
		return DefaultVoice
	}

	for _, voice := range Voices {
		if strings.EqualFold(voice.Name, choice) {
			return voice
		}
	}

	return DefaultVoice
}

// GreetingPrompt asks for a short greeting suited to the voice.
func GreetingPrompt(voice Voice) string {
	return fmt.Sprintf("The '%s' voice is described as '%s'. Generate a short 2-sentence greeting that would sound good in this voice style.", voice.Name, voice.Description)
}
