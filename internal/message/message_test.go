package message

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	msg, err := Decode([]byte(`{"id":"11111111-1111-1111-1111-111111111111","content":"Hello, World!"}`))
	require.NoError(t, err)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", msg.ID.String())
	assert.Equal(t, "Hello, World!", msg.Content)
}

func TestDecode_Malformed(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"not json", `not json at all`},
		{"missing id", `{"content":"hi"}`},
		{"empty id", `{"id":"","content":"hi"}`},
		{"bad uuid", `{"id":"not-a-uuid","content":"hi"}`},
		{"nil uuid", `{"id":"00000000-0000-0000-0000-000000000000","content":"hi"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.payload))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed), "expected ErrMalformed, got %v", err)
		})
	}
}

func TestDecode_EmptyContentAllowed(t *testing.T) {
	msg, err := Decode([]byte(`{"id":"11111111-1111-1111-1111-111111111111"}`))
	require.NoError(t, err)
	assert.Empty(t, msg.Content)
}

func TestKey_IndependentOfContent(t *testing.T) {
	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	a := Message{ID: id, Content: "one"}
	b := Message{ID: id, Content: "two"}
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", a.Key())
}

func TestJSONRoundTrip(t *testing.T) {
	orig := Message{ID: uuid.New(), Content: "سلام — héllo ✓"}
	data, err := json.Marshal(orig)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, orig, got)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Message{ID: uuid.New()}.Validate())
	err := Message{}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}
