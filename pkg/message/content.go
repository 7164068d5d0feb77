package message

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// ContentPart is one element of a multi-modal message body.
type ContentPart interface {
	isContentPart()
}

// TextContent is a plain text part.
type TextContent struct {
	Text string `json:"text"`
}

func (TextContent) isContentPart() {}

// ImageURLContent references an image by URL. Detail controls the
// resolution hint passed to the model ("low", "high", "auto").
type ImageURLContent struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

func (ImageURLContent) isContentPart() {}

// BinaryContent is raw inline data, typically an image, with its MIME type.
type BinaryContent struct {
	MIMEType string
	Data     []byte
}

func (BinaryContent) isContentPart() {}

// DataURL encodes the binary content as a base64 data URL.
func (b BinaryContent) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", b.MIMEType, base64.StdEncoding.EncodeToString(b.Data))
}

// MessageContent is a role-tagged multi-modal message body, the shape
// handed to multi-modal model clients.
type MessageContent struct {
	Role  ChatMessageType
	Parts []ContentPart
}

// TextParts builds a MessageContent from plain strings.
func TextParts(role ChatMessageType, parts ...string) MessageContent {
	mc := MessageContent{Role: role, Parts: make([]ContentPart, 0, len(parts))}
	for _, p := range parts {
		mc.Parts = append(mc.Parts, TextContent{Text: p})
	}
	return mc
}

type jsonPart struct {
	Type     string           `json:"type"`
	Text     string           `json:"text,omitempty"`
	ImageURL *ImageURLContent `json:"image_url,omitempty"`
	Binary   *jsonBinary      `json:"binary,omitempty"`
}

type jsonBinary struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

// MarshalJSON serializes the message with a type discriminator per part.
func (mc MessageContent) MarshalJSON() ([]byte, error) {
	parts := make([]jsonPart, 0, len(mc.Parts))

	for _, part := range mc.Parts {
		switch p := part.(type) {
		case TextContent:
			parts = append(parts, jsonPart{Type: "text", Text: p.Text})
		case ImageURLContent:
			img := p
			parts = append(parts, jsonPart{Type: "image_url", ImageURL: &img})
		case BinaryContent:
			parts = append(parts, jsonPart{Type: "binary", Binary: &jsonBinary{
				MIMEType: p.MIMEType,
				Data:     base64.StdEncoding.EncodeToString(p.Data),
			}})
		default:
			return nil, fmt.Errorf("cannot marshal content part of type %T", part)
		}
	}

	return json.Marshal(struct {
		Role  ChatMessageType `json:"role"`
		Parts []jsonPart      `json:"parts"`
	}{Role: mc.Role, Parts: parts})
}

// UnmarshalJSON rebuilds the typed content parts from their serialized form.
func (mc *MessageContent) UnmarshalJSON(data []byte) error {
	var raw struct {
		Role  ChatMessageType `json:"role"`
		Parts []jsonPart      `json:"parts"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	mc.Role = raw.Role
	mc.Parts = make([]ContentPart, 0, len(raw.Parts))

	for _, part := range raw.Parts {
		switch part.Type {
		case "text":
			mc.Parts = append(mc.Parts, TextContent{Text: part.Text})
		case "image_url":
			if part.ImageURL == nil {
				return fmt.Errorf("image_url part missing image_url field")
			}
			mc.Parts = append(mc.Parts, *part.ImageURL)
		case "binary":
			if part.Binary == nil {
				return fmt.Errorf("binary part missing binary field")
			}
			decoded, err := base64.StdEncoding.DecodeString(part.Binary.Data)
			if err != nil {
				return fmt.Errorf("failed to decode binary part: %w", err)
			}
			mc.Parts = append(mc.Parts, BinaryContent{MIMEType: part.Binary.MIMEType, Data: decoded})
		default:
			return fmt.Errorf("unknown content part type: %q", part.Type)
		}
	}

	return nil
}

// ParseDataURL splits a base64 data URL back into a BinaryContent.
func ParseDataURL(url string) (BinaryContent, error) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return BinaryContent{}, fmt.Errorf("not a data URL: %q", url)
	}

	mime, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return BinaryContent{}, fmt.Errorf("data URL is not base64 encoded: %q", url)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return BinaryContent{}, fmt.Errorf("failed to decode data URL: %w", err)
	}

	return BinaryContent{MIMEType: mime, Data: data}, nil
}
