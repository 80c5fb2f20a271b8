package wire_test

import (
	"encoding/base64"
	"testing"

	"github.com/davidhbaek/gemini-audio/internal/wire"
	"github.com/stretchr/testify/require"
)

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		Name    string
		Request wire.Request
		WantErr error
	}{
		{Name: "No turns", Request: wire.Request{Model: "gemini-2.5-flash"}, WantErr: wire.ErrEmptyRequest},
		{Name: "Single text turn", Request: wire.TextRequest("gemini-2.5-flash", "hello")},
		{Name: "Text and media in one turn", Request: wire.Request{
			Model: "gemini-2.5-flash",
			Turns: []wire.Turn{wire.UserTurn(
				&wire.Text{Text: "Transcribe this audio."},
				&wire.Media{Payload: wire.MediaPayload{ContentType: "audio/wav", Data: "AAEC"}},
			)},
		}},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			err := test.Request.Validate()
			if test.WantErr != nil {
				require.ErrorIs(t, err, test.WantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestTextRequest(t *testing.T) {
	req := wire.TextRequest("gemini-2.5-flash", "hello there")

	require.Equal(t, "gemini-2.5-flash", req.Model)
	require.Len(t, req.Turns, 1)
	require.Equal(t, wire.RoleUser, req.Turns[0].Role)
	require.Len(t, req.Turns[0].Content, 1)
	require.Equal(t, "text", req.Turns[0].Content[0].GetType())
	require.Equal(t, "hello there", req.Turns[0].Content[0].(*wire.Text).Text)
}

func TestMediaPayloadBytes(t *testing.T) {
	raw := []byte{0x00, 0xff, 0x10, 'R', 'I', 'F', 'F'}
	payload := wire.MediaPayload{ContentType: "audio/wav", Data: base64.StdEncoding.EncodeToString(raw)}

	got, err := payload.Bytes()
	require.NoError(t, err)
	require.Equal(t, raw, got)

	_, err = wire.MediaPayload{Data: "not base64!"}.Bytes()
	require.Error(t, err)
}
