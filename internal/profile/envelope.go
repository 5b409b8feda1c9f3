package profile

import "errors"

// Envelope is the variant-tagged persistence form of a Token. Exactly one
// field is set in a well-formed entry.
type Envelope struct {
	App  *AppToken  `json:"App,omitempty"`
	User *UserToken `json:"User,omitempty"`
}

// Wrap tags a token with its variant for persistence.
func Wrap(t Token) Envelope {
	switch t := t.(type) {
	case *AppToken:
		return Envelope{App: t}
	case *UserToken:
		return Envelope{User: t}
	}
	return Envelope{}
}

// Token unwraps the envelope. An entry that does not carry exactly one
// variant is corrupt.
func (e Envelope) Token() (Token, error) {
	switch {
	case e.App != nil && e.User == nil:
		return e.App, nil
	case e.User != nil && e.App == nil:
		return e.User, nil
	}
	return nil, errors.New("cache entry is not tagged with exactly one token variant")
}
