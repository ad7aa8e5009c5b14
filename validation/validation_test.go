package validation

import (
	"testing"
)

type titled struct {
	Title string `validate:"required,fieldValidator"`
}

func TestFieldValidator(t *testing.T) {
	validate := New()
	cases := []struct {
		title string
		valid bool
	}{
		{"TEST1", true},
		{"  padded  ", true},
		{"", false},
		{"   ", false},
	}
	for _, c := range cases {
		err := validate.Struct(titled{Title: c.title})
		if c.valid && err != nil {
			t.Errorf("title %q: expected valid, got %v", c.title, err)
		}
		if !c.valid && err == nil {
			t.Errorf("title %q: expected validation error", c.title)
		}
	}
}
