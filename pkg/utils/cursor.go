package utils

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"tienduca/pkg/errors"
)

// cursorToken is the wire form of a browse cursor. Clients treat the
// encoded string as opaque; the ref is the store's document path used
// as the tie-break within one timestamp.
type cursorToken struct {
	CreatedAt int64  `json:"c"`
	LastRef   string `json:"r"`
}

func EncodeCursor(createdAt time.Time, lastRef string) string {
	token := cursorToken{
		CreatedAt: createdAt.UnixNano(),
		LastRef:   lastRef,
	}
	raw, err := json.Marshal(token)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

func DecodeCursor(encoded string) (time.Time, string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return time.Time{}, "", errors.BadRequest("Invalid cursor", err)
	}
	var token cursorToken
	if err := json.Unmarshal(raw, &token); err != nil {
		return time.Time{}, "", errors.BadRequest("Invalid cursor", err)
	}
	return time.Unix(0, token.CreatedAt), token.LastRef, nil
}
