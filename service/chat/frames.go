package chat

import (
	"encoding/json"
	"time"

	msg "EMProject/module/message"
	"EMProject/tools/decode"
)

// Wire frames. Inbound is {"message","recipient_username"}; outbound is
// either an error frame or a chat-delivery frame pushed to the
// recipient's connections only.

const (
	ErrTextInvalidFormat = "Invalid message format"
	ErrTextUnknownUser   = "Recipient does not exist"
	ErrTextStorageFailed = "Message could not be saved"
)

type InboundFrame struct {
	Message           string `json:"message"`
	RecipientUsername string `json:"recipient_username"`
}

type ErrorFrame struct {
	Error string `json:"error"`
}

type ChatFrame struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// ParseInbound decodes a raw frame. Unknown fields are discarded and
// weakly typed values are coerced, like the rest of the payload decoding
// in this codebase.
func ParseInbound(raw []byte) (*InboundFrame, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return decode.Map[InboundFrame](m)
}

func BuildError(text string) []byte {
	b, _ := json.Marshal(ErrorFrame{Error: text})
	return b
}

func BuildChat(m *msg.Message) []byte {
	b, _ := json.Marshal(ChatFrame{
		Sender:    m.Sender,
		Recipient: m.Recipient,
		Message:   m.Content,
		Timestamp: m.Timestamp.Format(time.RFC3339Nano),
	})
	return b
}
