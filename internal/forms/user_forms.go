package forms

import "strings"

const minPasswordLen = 8

type SignupForm struct {
	FirstName       string `form:"first_name" json:"first_name"`
	LastName        string `form:"last_name" json:"last_name"`
	Username        string `form:"username" json:"username"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

func (f *SignupForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Username) == "" {
		errs.Add("username", "this field is required")
	}
	if !strings.Contains(f.Email, "@") {
		errs.Add("email", "enter a valid email address")
	}
	if len(f.Password) < minPasswordLen {
		errs.Add("password", "password must be at least 8 characters")
	}
	if f.Password != f.ConfirmPassword {
		errs.Add("confirm_password", "passwords do not match")
	}
	return errs
}

type LoginForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

func (f *LoginForm) Validate() Errors {
	errs := Errors{}
	if f.Username == "" {
		errs.Add("username", "this field is required")
	}
	if f.Password == "" {
		errs.Add("password", "this field is required")
	}
	return errs
}

type GroupForm struct {
	Title       string `form:"title" json:"title"`
	Slug        string `form:"slug" json:"slug"`
	Description string `form:"description" json:"description"`
}

func (f *GroupForm) Validate() Errors {
	errs := Errors{}
	checkText(errs, "title", f.Title)
	slug := strings.TrimSpace(f.Slug)
	if slug == "" {
		errs.Add("slug", "this field is required")
		return errs
	}
	for _, r := range slug {
		ok := r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			errs.Add("slug", "only letters, digits, hyphens and underscores")
			break
		}
	}
	return errs
}
