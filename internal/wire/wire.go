// Package wire holds types that represent anything that goes across a boundary
// Think I/O operations
package wire

import (
	"encoding/base64"
	"errors"
)

// RoleUser is the only speaker role this system sends.
const RoleUser = "user"

var ErrEmptyRequest = errors.New("request has no turns")

// MediaPayload is binary media encoded as standard base64 text and tagged with
// its content type.
type MediaPayload struct {
	ContentType string `json:"content_type"`
	Data        string `json:"data"`
}

// Bytes decodes the payload back to the original bytes.
func (p MediaPayload) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(p.Data)
}

type Content interface {
	GetType() string
}

type Text struct {
	Text string `json:"text"`
}

var _ Content = &Text{}

func (t *Text) GetType() string {
	return "text"
}

type Media struct {
	Payload MediaPayload `json:"payload"`
}

var _ Content = &Media{}

func (m *Media) GetType() string {
	return "media"
}

// Turn is one ordered set of content parts attributed to a role.
type Turn struct {
	Role    string    `json:"role"`
	Content []Content `json:"content"`
}

// UserTurn builds a turn with the user role.
func UserTurn(parts ...Content) Turn {
	return Turn{Role: RoleUser, Content: parts}
}

type Request struct {
	Model string `json:"model"`
	Turns []Turn `json:"turns"`
}

func (r Request) Validate() error {
	if len(r.Turns) == 0 {
		return ErrEmptyRequest
	}
	return nil
}

// TextRequest is a single user turn holding one text part.
func TextRequest(model, text string) Request {
	return Request{
		Model: model,
		Turns: []Turn{UserTurn(&Text{Text: text})},
	}
}

// Result is the text of a response. Anything else the endpoint returns is
// discarded.
type Result struct {
	Text string `json:"text"`
}
