// Package forms binds and validates user submissions. A form either yields
// a complete, valid construction intent or a field-keyed error map; nothing
// invalid ever reaches storage partially applied.
package forms

import (
	"strings"
	"unicode/utf8"

	"microblog/internal/model"
)

// Errors maps field name to the first validation message for that field.
type Errors map[string]string

func (e Errors) Add(field, msg string) {
	if _, taken := e[field]; !taken {
		e[field] = msg
	}
}

func (e Errors) Ok() bool {
	return len(e) == 0
}

func checkText(errs Errors, field, text string) {
	if strings.TrimSpace(text) == "" {
		errs.Add(field, "this field is required")
		return
	}
	if utf8.RuneCountInString(text) > model.TextLimit {
		errs.Add(field, "must be 200 characters or fewer")
	}
}
