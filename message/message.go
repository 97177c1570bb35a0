// Package message implements C6: the typed application-message schema
// carried inside every AEAD plaintext (spec.md §4.6). The wire shape —
// an externally-tagged JSON union, one object key naming the variant —
// is lifted byte-for-byte from the Rust original's `#[derive(Serialize,
// Deserialize)] enum Message` (_examples/original_source/src/lib.rs),
// which serde serializes the same way by default; encoding/json has no
// built-in externally-tagged-union support, so Message implements
// MarshalJSON/UnmarshalJSON itself to reproduce that exact shape.
package message

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/c0d3-rev0lut10n/dawn-stdlib/dawnerr"
)

// Tag names the payload variant. Tag and field names are normative —
// they are the cross-implementation wire contract (spec.md §6).
type Tag string

const (
	TagInitRequest  Tag = "InitRequest"
	TagInitAccept   Tag = "InitAccept"
	TagText         Tag = "Text"
	TagInternal     Tag = "Internal"
	TagVoice        Tag = "Voice"
	TagPicture      Tag = "Picture"
	TagLinkedMedia  Tag = "LinkedMedia"
)

// InitRequest is the initiator's handshake payload. curve_pfs_2 is an
// addition over the Rust original's {id,mdc,kyber,sign,name,comment}:
// it carries the second DH public key that seeds the responder's first
// send chain, because spec.md's direction-separated PFS design needs
// a second seed the original's single shared pfs_key did not.
type InitRequest struct {
	ID        string `json:"id"`
	MDC       string `json:"mdc"`
	Kyber     string `json:"kyber"`
	Sign      string `json:"sign"`
	CurvePFS2 string `json:"curve_pfs_2"`
	// MDCSeed has no counterpart in the Rust original's InitRequest
	// fields listed above; spec.md's richer, direction-separated PFS design needs
	// the seed carried explicitly so the responder can compute every
	// future predictable MDC the same way the initiator will.
	MDCSeed string `json:"mdc_seed"`
	Name    string `json:"name"`
	Comment string `json:"comment"`
}

// InitAccept is the responder's handshake payload.
type InitAccept struct {
	Kyber string `json:"kyber"`
	Sign  string `json:"sign"`
	MDC   string `json:"mdc"`
}

type Text struct {
	Text string `json:"text"`
	MDC  string `json:"mdc"`
}

type Internal struct {
	Event     uint8  `json:"event"`
	EventData string `json:"event_data"`
	MDC       string `json:"mdc"`
}

type Voice struct {
	Voice string `json:"voice"`
	MDC   string `json:"mdc"`
}

type Picture struct {
	Picture     string `json:"picture"`
	Description string `json:"description"`
	MDC         string `json:"mdc"`
}

type LinkedMedia struct {
	MediaType   uint8  `json:"media_type"`
	MediaLink   string `json:"media_link"`
	MediaKey    string `json:"media_key"`
	Description string `json:"description"`
	MDC         string `json:"mdc"`
}

// Message is the tagged union. Exactly one of the variant pointers is
// non-nil, matching Tag.
type Message struct {
	Tag Tag

	InitRequest *InitRequest
	InitAccept  *InitAccept
	Text        *Text
	Internal    *Internal
	Voice       *Voice
	Picture     *Picture
	LinkedMedia *LinkedMedia
}

// MDC returns the mdc field carried by whichever variant is set.
func (m Message) MDC() string {
	switch m.Tag {
	case TagInitRequest:
		return m.InitRequest.MDC
	case TagInitAccept:
		return m.InitAccept.MDC
	case TagText:
		return m.Text.MDC
	case TagInternal:
		return m.Internal.MDC
	case TagVoice:
		return m.Voice.MDC
	case TagPicture:
		return m.Picture.MDC
	case TagLinkedMedia:
		return m.LinkedMedia.MDC
	default:
		return ""
	}
}

func (m Message) MarshalJSON() ([]byte, error) {
	var payload interface{}
	switch m.Tag {
	case TagInitRequest:
		payload = m.InitRequest
	case TagInitAccept:
		payload = m.InitAccept
	case TagText:
		payload = m.Text
	case TagInternal:
		payload = m.Internal
	case TagVoice:
		payload = m.Voice
	case TagPicture:
		payload = m.Picture
	case TagLinkedMedia:
		payload = m.LinkedMedia
	default:
		return nil, dawnerr.New("message.MarshalJSON", dawnerr.Serialize, fmt.Errorf("unknown tag %q", m.Tag))
	}
	return json.Marshal(map[string]interface{}{string(m.Tag): payload})
}

func (m *Message) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return dawnerr.New("message.UnmarshalJSON", dawnerr.Decode, err)
	}
	if len(raw) != 1 {
		return dawnerr.New("message.UnmarshalJSON", dawnerr.Decode, fmt.Errorf("expected exactly one tag key, got %d", len(raw)))
	}
	for tag, body := range raw {
		m.Tag = Tag(tag)
		var err error
		switch m.Tag {
		case TagInitRequest:
			m.InitRequest = &InitRequest{}
			err = json.Unmarshal(body, m.InitRequest)
		case TagInitAccept:
			m.InitAccept = &InitAccept{}
			err = json.Unmarshal(body, m.InitAccept)
		case TagText:
			m.Text = &Text{}
			err = json.Unmarshal(body, m.Text)
		case TagInternal:
			m.Internal = &Internal{}
			err = json.Unmarshal(body, m.Internal)
		case TagVoice:
			m.Voice = &Voice{}
			err = json.Unmarshal(body, m.Voice)
		case TagPicture:
			m.Picture = &Picture{}
			err = json.Unmarshal(body, m.Picture)
		case TagLinkedMedia:
			m.LinkedMedia = &LinkedMedia{}
			err = json.Unmarshal(body, m.LinkedMedia)
		default:
			return dawnerr.New("message.UnmarshalJSON", dawnerr.Decode, fmt.Errorf("unknown tag %q", tag))
		}
		if err != nil {
			return dawnerr.New("message.UnmarshalJSON", dawnerr.Decode, err)
		}
	}
	return nil
}

// Encode serializes m to its wire JSON form.
func Encode(m Message) ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, dawnerr.New("message.Encode", dawnerr.Serialize, err)
	}
	return b, nil
}

// Decode parses the wire JSON form into a Message.
func Decode(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		if de, ok := err.(*dawnerr.Error); ok {
			return Message{}, de
		}
		return Message{}, dawnerr.New("message.Decode", dawnerr.Decode, err)
	}
	return m, nil
}

// ContentType is the u8 code send_msg/parse_msg operate on (spec.md §4.6).
type ContentType uint8

const (
	ContentText ContentType = iota
	ContentInternal
	ContentVoice
	ContentPicture
	ContentLinkedMedia
)

// Parsed is parse_msg's result shape: a content type, an optional text
// field, and optional raw bytes, per spec.md §4.6/§8 (S2-S6).
type Parsed struct {
	Type ContentType
	Text *string
	Data []byte
}

// BuildSendable implements send_msg's per-variant validation and
// construction (spec.md §4.6), given the conversation's current mdc.
func BuildSendable(contentType ContentType, text *string, data []byte, mdc string) (Message, error) {
	const op = "message.BuildSendable"
	switch contentType {
	case ContentText:
		if text == nil || *text == "" {
			return Message{}, dawnerr.New(op, dawnerr.BadInput, fmt.Errorf("text content requires text"))
		}
		return Message{Tag: TagText, Text: &Text{Text: *text, MDC: mdc}}, nil

	case ContentInternal:
		if text == nil {
			return Message{}, dawnerr.New(op, dawnerr.BadInput, fmt.Errorf("internal content requires an event code"))
		}
		eventID, err := strconv.ParseUint(*text, 10, 8)
		if err != nil {
			return Message{}, dawnerr.New(op, dawnerr.BadInput, fmt.Errorf("invalid event code: %w", err))
		}
		if data == nil {
			return Message{}, dawnerr.New(op, dawnerr.BadInput, fmt.Errorf("internal content requires event_data"))
		}
		return Message{Tag: TagInternal, Internal: &Internal{
			Event:     uint8(eventID),
			EventData: base64.RawStdEncoding.EncodeToString(data),
			MDC:       mdc,
		}}, nil

	case ContentVoice:
		if data == nil {
			return Message{}, dawnerr.New(op, dawnerr.BadInput, fmt.Errorf("voice content requires data"))
		}
		return Message{Tag: TagVoice, Voice: &Voice{
			Voice: base64.RawStdEncoding.EncodeToString(data),
			MDC:   mdc,
		}}, nil

	case ContentPicture:
		if data == nil {
			return Message{}, dawnerr.New(op, dawnerr.BadInput, fmt.Errorf("picture content requires data"))
		}
		desc := ""
		if text != nil {
			desc = *text
		}
		return Message{Tag: TagPicture, Picture: &Picture{
			Picture:     base64.RawStdEncoding.EncodeToString(data),
			Description: desc,
			MDC:         mdc,
		}}, nil

	case ContentLinkedMedia:
		if len(data) != 1 {
			return Message{}, dawnerr.New(op, dawnerr.BadInput, fmt.Errorf("linked media requires exactly 1 byte of media type, got %d", len(data)))
		}
		if text == nil {
			return Message{}, dawnerr.New(op, dawnerr.BadInput, fmt.Errorf("linked media requires a link/key/description text block"))
		}
		lines := strings.Split(*text, "\n")
		if len(lines) < 2 {
			return Message{}, dawnerr.New(op, dawnerr.BadInput, fmt.Errorf("linked media text must contain a link line and a key line"))
		}
		link := lines[0]
		key := lines[1]
		desc := strings.Join(lines[2:], "\n")
		return Message{Tag: TagLinkedMedia, LinkedMedia: &LinkedMedia{
			MediaType:   data[0],
			MediaLink:   link,
			MediaKey:    key,
			Description: desc,
			MDC:         mdc,
		}}, nil

	default:
		return Message{}, dawnerr.New(op, dawnerr.BadInput, fmt.Errorf("unknown content type %d", contentType))
	}
}

// ParseReceived implements parse_msg's per-variant extraction (spec.md
// §4.6/§8). Handshake tags (InitRequest/InitAccept) are rejected — a
// steady-state record must never carry a handshake tag (spec.md §4.2).
func ParseReceived(m Message) (Parsed, error) {
	const op = "message.ParseReceived"
	switch m.Tag {
	case TagText:
		t := m.Text.Text
		return Parsed{Type: ContentText, Text: &t}, nil
	case TagInternal:
		raw, err := base64.RawStdEncoding.DecodeString(m.Internal.EventData)
		if err != nil {
			return Parsed{}, dawnerr.New(op, dawnerr.Decode, err)
		}
		s := strconv.Itoa(int(m.Internal.Event))
		return Parsed{Type: ContentInternal, Text: &s, Data: raw}, nil
	case TagVoice:
		raw, err := base64.RawStdEncoding.DecodeString(m.Voice.Voice)
		if err != nil {
			return Parsed{}, dawnerr.New(op, dawnerr.Decode, err)
		}
		return Parsed{Type: ContentVoice, Data: raw}, nil
	case TagPicture:
		raw, err := base64.RawStdEncoding.DecodeString(m.Picture.Picture)
		if err != nil {
			return Parsed{}, dawnerr.New(op, dawnerr.Decode, err)
		}
		desc := m.Picture.Description
		return Parsed{Type: ContentPicture, Text: &desc, Data: raw}, nil
	case TagLinkedMedia:
		combined := m.LinkedMedia.MediaLink + "\n" + m.LinkedMedia.MediaKey + "\n" + m.LinkedMedia.Description
		return Parsed{Type: ContentLinkedMedia, Text: &combined, Data: []byte{m.LinkedMedia.MediaType}}, nil
	default:
		return Parsed{}, dawnerr.New(op, dawnerr.Decode, fmt.Errorf("unexpected tag %q in steady-state record", m.Tag))
	}
}
