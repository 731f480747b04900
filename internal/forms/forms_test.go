package forms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPostFormValidate(t *testing.T) {
	f := &PostForm{Text: "hello"}
	require.True(t, f.Validate().Ok())

	f = &PostForm{Text: ""}
	errs := f.Validate()
	require.Contains(t, errs, "text")

	f = &PostForm{Text: "   "}
	require.Contains(t, f.Validate(), "text")

	f = &PostForm{Text: strings.Repeat("a", 200)}
	require.True(t, f.Validate().Ok())

	f = &PostForm{Text: strings.Repeat("a", 201)}
	require.Contains(t, f.Validate(), "text")

	// The limit counts runes, not bytes.
	f = &PostForm{Text: strings.Repeat("я", 200)}
	require.True(t, f.Validate().Ok())

	f = &PostForm{Text: "ok", Group: "12"}
	require.True(t, f.Validate().Ok())
	require.Equal(t, uint64(12), *f.GroupID())

	f = &PostForm{Text: "ok", Group: "abc"}
	require.Contains(t, f.Validate(), "group")
}

func TestPostFormGroupIDEmpty(t *testing.T) {
	f := &PostForm{Text: "ok"}
	require.Nil(t, f.GroupID())
}

func TestCommentFormValidate(t *testing.T) {
	require.True(t, (&CommentForm{Text: "nice"}).Validate().Ok())
	require.Contains(t, (&CommentForm{}).Validate(), "text")
	require.Contains(t, (&CommentForm{Text: strings.Repeat("b", 201)}).Validate(), "text")
}

func TestSignupFormValidate(t *testing.T) {
	valid := SignupForm{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Username:        "ada",
		Email:           "ada@example.com",
		Password:        "longenough",
		ConfirmPassword: "longenough",
	}
	require.True(t, valid.Validate().Ok())

	f := valid
	f.Username = ""
	require.Contains(t, f.Validate(), "username")

	f = valid
	f.Email = "not-an-email"
	require.Contains(t, f.Validate(), "email")

	f = valid
	f.Password, f.ConfirmPassword = "short", "short"
	require.Contains(t, f.Validate(), "password")

	f = valid
	f.ConfirmPassword = "different-pass"
	require.Contains(t, f.Validate(), "confirm_password")
}

func TestGroupFormValidate(t *testing.T) {
	f := GroupForm{Title: "Cats", Slug: "cats-01"}
	require.True(t, f.Validate().Ok())

	f = GroupForm{Title: "Cats", Slug: ""}
	require.Contains(t, f.Validate(), "slug")

	f = GroupForm{Title: "Cats", Slug: "no spaces"}
	require.Contains(t, f.Validate(), "slug")

	f = GroupForm{Title: "", Slug: "cats"}
	require.Contains(t, f.Validate(), "title")
}

func TestErrorsKeepFirstMessage(t *testing.T) {
	errs := Errors{}
	errs.Add("text", "first")
	errs.Add("text", "second")
	require.Equal(t, "first", errs["text"])
	require.False(t, errs.Ok())
}
