package messages

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONCodec_RoundTrip(t *testing.T) {
	codec := JSONCodec{}
	msgs := []Message{
		NewSystemMessage("you are terse"),
		NewUserMessage("hi"),
		{
			Kind: KindToolCall,
			Role: RoleAssistant,
			Payload: map[string]any{
				"name": "lookup",
				"args": "q=weather",
			},
		},
		{
			Kind:     KindToolResult,
			Role:     RoleTool,
			Content:  "sunny",
			Metadata: map[string]any{"tool": "lookup"},
		},
	}

	payload, err := codec.Serialize(msgs)
	require.NoError(t, err)

	out, err := codec.Deserialize(payload)
	require.NoError(t, err)
	require.Equal(t, msgs, out)
}

func TestJSONCodec_EmptyList(t *testing.T) {
	codec := JSONCodec{}

	payload, err := codec.Serialize(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", payload)

	out, err := codec.Deserialize(payload)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestJSONCodec_KindDefaultsToText(t *testing.T) {
	out, err := JSONCodec{}.Deserialize(`[{"role":"user","content":"hi"}]`)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, KindText, out[0].Kind)
}

func TestJSONCodec_RejectsMalformedPayloads(t *testing.T) {
	codec := JSONCodec{}

	cases := map[string]string{
		"empty":        "",
		"not a list":   `{"role":"user"}`,
		"scalar":       `42`,
		"broken json":  `[{"role":"user"`,
		"missing role": `[{"content":"hi"}]`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := codec.Deserialize(payload)
			require.Error(t, err)
		})
	}
}

func TestBag_PreservesInsertionOrder(t *testing.T) {
	var bag Bag
	bag.Append(NewUserMessage("one"))
	bag.Append(NewAssistantMessage("two"), NewUserMessage("three"))

	msgs := bag.Messages()
	require.Equal(t, 3, bag.Len())
	require.Equal(t, "one", msgs[0].Content)
	require.Equal(t, "two", msgs[1].Content)
	require.Equal(t, "three", msgs[2].Content)

	// Messages returns a copy; mutating it must not touch the bag.
	msgs[0].Content = "mutated"
	require.Equal(t, "one", bag.Messages()[0].Content)
}
