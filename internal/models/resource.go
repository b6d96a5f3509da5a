package models

import "errors"

type Lang string

const (
	LangEn Lang = "en"
	LangPl Lang = "pl"
)

var ErrUnknownLang = errors.New("unknown language")

func ParseLang(s string) (Lang, error) {
	switch Lang(s) {
	case LangEn, LangPl:
		return Lang(s), nil
	}
	return "", ErrUnknownLang
}

// Resource is a translatable text value. English is the required base,
// Polish falls back to it when unset.
type Resource struct {
	Key string  `gorm:"primaryKey;size:64" json:"key"`
	En  string  `gorm:"type:text;not null" json:"en"`
	Pl  *string `gorm:"type:text"          json:"pl,omitempty"`
}

func (r Resource) Value(lang Lang) string {
	if lang == LangPl && r.Pl != nil {
		return *r.Pl
	}
	return r.En
}

type ResourceData struct {
	Key string  `json:"key"`
	En  *string `json:"en,omitempty"`
	Pl  *string `json:"pl,omitempty"`
}
