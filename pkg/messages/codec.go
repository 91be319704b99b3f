package messages

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Codec converts a message list to and from its text transport encoding.
type Codec interface {
	Serialize(msgs []Message) (string, error)
	Deserialize(payload string) ([]Message, error)
}

// JSONCodec encodes a message list as a JSON array. It is the transport
// format used by the stored `messages` column.
type JSONCodec struct{}

var _ Codec = JSONCodec{}

func (JSONCodec) Serialize(msgs []Message) (string, error) {
	if msgs == nil {
		msgs = []Message{}
	}
	b, err := json.Marshal(msgs)
	if err != nil {
		return "", errors.Wrap(err, "json codec: serialize messages")
	}
	return string(b), nil
}

func (JSONCodec) Deserialize(payload string) ([]Message, error) {
	trimmed := strings.TrimSpace(payload)
	if trimmed == "" || !strings.HasPrefix(trimmed, "[") {
		return nil, errors.Errorf("json codec: payload is not a message list")
	}
	var msgs []Message
	if err := json.Unmarshal([]byte(trimmed), &msgs); err != nil {
		return nil, errors.Wrap(err, "json codec: deserialize messages")
	}
	for i := range msgs {
		if strings.TrimSpace(string(msgs[i].Role)) == "" {
			return nil, errors.Errorf("json codec: message %d has no role", i)
		}
		if msgs[i].Kind == "" {
			msgs[i].Kind = KindText
		}
	}
	return msgs, nil
}
