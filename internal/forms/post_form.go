package forms

import "strconv"

// PostForm carries a post submission: text, optional group, optional image.
// The image part is bound separately by the handler (multipart); group
// existence is checked against storage by the service.
type PostForm struct {
	Text  string `form:"text" json:"text"`
	Group string `form:"group" json:"group"`
}

func (f *PostForm) Validate() Errors {
	errs := Errors{}
	checkText(errs, "text", f.Text)
	if f.Group != "" {
		if _, err := strconv.ParseUint(f.Group, 10, 64); err != nil {
			errs.Add("group", "select a valid group")
		}
	}
	return errs
}

// GroupID returns the parsed group reference, nil when none was submitted.
// Only meaningful after Validate passed.
func (f *PostForm) GroupID() *uint64 {
	if f.Group == "" {
		return nil
	}
	id, err := strconv.ParseUint(f.Group, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}
