package forms

type CommentForm struct {
	Text string `form:"text" json:"text"`
}

func (f *CommentForm) Validate() Errors {
	errs := Errors{}
	checkText(errs, "text", f.Text)
	return errs
}
