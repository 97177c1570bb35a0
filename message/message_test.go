package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []Message{
		{Tag: TagText, Text: &Text{Text: "hello", MDC: "abc"}},
		{Tag: TagInternal, Internal: &Internal{Event: 7, EventData: "ZGF0YQ", MDC: "abc"}},
		{Tag: TagVoice, Voice: &Voice{Voice: "dm9pY2U", MDC: "abc"}},
		{Tag: TagPicture, Picture: &Picture{Picture: "cGljdHVyZQ", Description: "a cat", MDC: "abc"}},
		{Tag: TagLinkedMedia, LinkedMedia: &LinkedMedia{MediaType: 2, MediaLink: "https://x", MediaKey: "key", Description: "d", MDC: "abc"}},
		{Tag: TagInitRequest, InitRequest: &InitRequest{ID: "id", MDC: "mdc", Kyber: "kk", Sign: "ss", CurvePFS2: "cc", MDCSeed: "seed", Name: "alice", Comment: "hi"}},
		{Tag: TagInitAccept, InitAccept: &InitAccept{Kyber: "kk", Sign: "ss", MDC: "mdc"}},
	}

	for _, want := range cases {
		data, err := Encode(want)
		require.NoError(t, err)
		got, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, want.MDC(), got.MDC())
	}
}

func TestDecodeRejectsMultipleTags(t *testing.T) {
	_, err := Decode([]byte(`{"Text":{"text":"a","mdc":"m"},"Voice":{"voice":"b","mdc":"m"}}`))
	assert.Error(t, err)
}

func TestDecodeRejectsUnknownTag(t *testing.T) {
	_, err := Decode([]byte(`{"Bogus":{}}`))
	assert.Error(t, err)
}

func TestBuildSendableText(t *testing.T) {
	text := "hi there"
	m, err := BuildSendable(ContentText, &text, nil, "mdc1")
	require.NoError(t, err)
	assert.Equal(t, TagText, m.Tag)
	assert.Equal(t, "hi there", m.Text.Text)
}

func TestBuildSendableTextRequiresText(t *testing.T) {
	_, err := BuildSendable(ContentText, nil, nil, "mdc1")
	assert.Error(t, err)
}

func TestBuildSendableInternal(t *testing.T) {
	code := "42"
	data := []byte("payload")
	m, err := BuildSendable(ContentInternal, &code, data, "mdc1")
	require.NoError(t, err)
	require.Equal(t, TagInternal, m.Tag)
	assert.Equal(t, uint8(42), m.Internal.Event)

	parsed, err := ParseReceived(m)
	require.NoError(t, err)
	assert.Equal(t, "42", *parsed.Text)
	assert.Equal(t, data, parsed.Data)
}

func TestBuildSendableInternalBadEventCode(t *testing.T) {
	code := "not-a-number"
	_, err := BuildSendable(ContentInternal, &code, []byte("x"), "mdc1")
	assert.Error(t, err)
}

func TestBuildSendableVoiceRequiresData(t *testing.T) {
	_, err := BuildSendable(ContentVoice, nil, nil, "mdc1")
	assert.Error(t, err)
}

func TestBuildSendablePictureOptionalDescription(t *testing.T) {
	data := []byte("jpeg-bytes")
	m, err := BuildSendable(ContentPicture, nil, data, "mdc1")
	require.NoError(t, err)
	assert.Equal(t, "", m.Picture.Description)

	parsed, err := ParseReceived(m)
	require.NoError(t, err)
	assert.Equal(t, data, parsed.Data)
}

func TestBuildSendableLinkedMedia(t *testing.T) {
	text := "https://example.com/media\nsecretkey\nsome description"
	m, err := BuildSendable(ContentLinkedMedia, &text, []byte{9}, "mdc1")
	require.NoError(t, err)
	assert.Equal(t, uint8(9), m.LinkedMedia.MediaType)
	assert.Equal(t, "https://example.com/media", m.LinkedMedia.MediaLink)
	assert.Equal(t, "secretkey", m.LinkedMedia.MediaKey)
	assert.Equal(t, "some description", m.LinkedMedia.Description)
}

func TestBuildSendableLinkedMediaRequiresOneByte(t *testing.T) {
	text := "link\nkey"
	_, err := BuildSendable(ContentLinkedMedia, &text, []byte{1, 2}, "mdc1")
	assert.Error(t, err)
}

func TestParseReceivedRejectsHandshakeTags(t *testing.T) {
	_, err := ParseReceived(Message{Tag: TagInitRequest, InitRequest: &InitRequest{}})
	assert.Error(t, err)
}
