package pagination

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/craftportal/learning-service/internal/apperrors"
)

// Cursor is the decoded position token: the ordering-key tuple of the last
// row the client has seen. It deliberately carries key values rather than a
// row id so the ordering columns can change without breaking old tokens.
type Cursor struct {
	Keys []any `json:"k"`
}

// Codec encodes cursors as base64(JSON) with an HMAC-SHA256 tag. Tokens are
// tamper-evident, not encrypted; they contain no data the caller did not
// already see.
type Codec struct {
	secret []byte
}

func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

func (c *Codec) Encode(keys ...any) (string, error) {
	payload, err := json.Marshal(Cursor{Keys: keys})
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(payload) + "." +
		base64.RawURLEncoding.EncodeToString(c.sign(payload)), nil
}

// Decode verifies and unpacks a token. Any malformed or tampered token is a
// validation error; the caller never sees partial state.
func (c *Codec) Decode(token string) (*Cursor, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return nil, invalidCursor()
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, invalidCursor()
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, invalidCursor()
	}
	if !hmac.Equal(sig, c.sign(payload)) {
		return nil, invalidCursor()
	}

	var cursor Cursor
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&cursor); err != nil {
		return nil, invalidCursor()
	}
	// Numbers come back as json.Number; convert to int64 so keyset
	// predicates compare against integer columns with the right type.
	for i, key := range cursor.Keys {
		if num, ok := key.(json.Number); ok {
			n, err := num.Int64()
			if err != nil {
				return nil, invalidCursor()
			}
			cursor.Keys[i] = n
		}
	}
	return &cursor, nil
}

func (c *Codec) sign(payload []byte) []byte {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write(payload)
	return mac.Sum(nil)
}

func invalidCursor() error {
	return apperrors.ValidationMsg("cursor", "invalid cursor token")
}
