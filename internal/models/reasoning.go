package models

import "encoding/json"

// Reasoning is the polymorphic explanation attached to a signal or decision.
// The payload may be free text, a mapping of aspect to detail, or any other
// JSON value; it is carried verbatim and classified downstream.
type Reasoning struct {
	// Raw is the verbatim JSON payload. Empty means no reasoning was given.
	Raw string
}

// ReasoningFromText builds a plain-text reasoning payload.
func ReasoningFromText(text string) Reasoning {
	if text == "" {
		return Reasoning{}
	}
	b, _ := json.Marshal(text)
	return Reasoning{Raw: string(b)}
}

// ReasoningFromJSON wraps a raw JSON value as a reasoning payload.
func ReasoningFromJSON(raw string) Reasoning {
	return Reasoning{Raw: raw}
}

// IsZero reports whether no reasoning was supplied.
func (r Reasoning) IsZero() bool {
	return r.Raw == "" || r.Raw == "null" || r.Raw == `""`
}

// UnmarshalJSON keeps the payload verbatim so key order survives decoding.
func (r *Reasoning) UnmarshalJSON(data []byte) error {
	r.Raw = string(data)
	return nil
}

// MarshalJSON emits the payload unchanged.
func (r Reasoning) MarshalJSON() ([]byte, error) {
	if r.Raw == "" {
		return []byte("null"), nil
	}
	return []byte(r.Raw), nil
}
