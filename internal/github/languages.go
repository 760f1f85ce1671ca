package github

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// LanguageBytes is one entry of a repository's language breakdown.
type LanguageBytes struct {
	Name  string
	Bytes int64
}

// LanguageBreakdown is the body of GET /repos/{owner}/{repo}/languages,
// e.g. {"Go": 12034, "Shell": 512}.
//
// It is a slice rather than a map because the object's key order is
// meaningful downstream: it breaks ties between equal percentages.
type LanguageBreakdown []LanguageBytes

// UnmarshalJSON decodes the object while keeping its key order.
func (lb *LanguageBreakdown) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*lb = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("github: languages: expected object, got %v", tok)
	}

	out := LanguageBreakdown{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("github: languages: unexpected key %v", keyTok)
		}

		var n json.Number
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("github: languages: value for %q: %w", name, err)
		}
		b, err := n.Int64()
		if err != nil {
			return fmt.Errorf("github: languages: value for %q: %w", name, err)
		}
		if b < 0 {
			return errors.New("github: languages: negative byte count for " + name)
		}
		out = append(out, LanguageBytes{Name: name, Bytes: b})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*lb = out
	return nil
}
