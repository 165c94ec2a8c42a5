// Package validate gives form fields the valid/invalid styling and feedback
// text shown next to them.
package validate

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"smartlink/pkg/format"
	"smartlink/pkg/surface"
)

const (
	ClassValid     = "is-valid"
	ClassInvalid   = "is-invalid"
	ClassValidated = "was-validated"
)

type FieldType string

const (
	TypeText   FieldType = "text"
	TypeEmail  FieldType = "email"
	TypeURL    FieldType = "url"
	TypeNumber FieldType = "number"
)

// Field is a form control plus the feedback element rendered beside it.
type Field struct {
	Name      string
	Type      FieldType
	Required  bool
	MinLength int
	MaxLength int

	Input    *surface.Element
	Feedback *surface.Element
}

// NewField creates a field with fresh input and feedback elements.
func NewField(name string, typ FieldType) *Field {
	return &Field{
		Name:     name,
		Type:     typ,
		Input:    surface.NewElement("input"),
		Feedback: surface.NewElement("div"),
	}
}

// Validity mirrors the constraint flags a browser reports for a control.
type Validity struct {
	ValueMissing bool
	TypeMismatch bool
	TooShort     bool
	TooLong      bool
}

func (v Validity) Valid() bool {
	return !v.ValueMissing && !v.TypeMismatch && !v.TooShort && !v.TooLong
}

// CheckValidity evaluates the field's constraints against its current value.
// Length and type constraints only apply to non-empty values.
func CheckValidity(f *Field) Validity {
	value := f.Input.Value()
	var v Validity

	if value == "" {
		v.ValueMissing = f.Required
		return v
	}

	switch f.Type {
	case TypeEmail:
		addr, err := mail.ParseAddress(value)
		v.TypeMismatch = err != nil || addr.Address != value
	case TypeURL:
		v.TypeMismatch = !format.IsValidURL(value)
	case TypeNumber:
		_, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		v.TypeMismatch = err != nil
	}

	n := utf8.RuneCountInString(value)
	if f.MinLength > 0 && n < f.MinLength {
		v.TooShort = true
	}
	if f.MaxLength > 0 && n > f.MaxLength {
		v.TooLong = true
	}
	return v
}

// ValidateField toggles the field's validity classes and, when invalid,
// writes the matching feedback message. It reports whether the field is
// valid.
func ValidateField(f *Field) bool {
	v := CheckValidity(f)
	valid := v.Valid()

	f.Input.RemoveClass(ClassValid, ClassInvalid)
	if valid {
		f.Input.AddClass(ClassValid)
	} else {
		f.Input.AddClass(ClassInvalid)
	}

	if f.Feedback != nil && !valid {
		if msg := feedbackMessage(f, v); msg != "" {
			f.Feedback.SetText(msg)
		}
	}
	return valid
}

func feedbackMessage(f *Field, v Validity) string {
	switch {
	case v.ValueMissing:
		return "This field is required."
	case v.TypeMismatch:
		switch f.Type {
		case TypeEmail:
			return "Please enter a valid email address."
		case TypeURL:
			return "Please enter a valid URL."
		}
		return ""
	case v.TooShort:
		return fmt.Sprintf("Minimum length is %d characters.", f.MinLength)
	case v.TooLong:
		return fmt.Sprintf("Maximum length is %d characters.", f.MaxLength)
	}
	return ""
}

// Form groups fields validated together on submit.
type Form struct {
	Element *surface.Element
	Fields  []*Field
	tree    *surface.Tree
}

// NewForm attaches the fields' inputs to tree so focus can move to them.
func NewForm(tree *surface.Tree, fields ...*Field) *Form {
	form := &Form{
		Element: surface.NewElement("form"),
		Fields:  fields,
		tree:    tree,
	}
	tree.Append(form.Element)
	for _, f := range fields {
		tree.Append(f.Input)
	}
	return form
}

// Submit validates every field, marks the form as validated and focuses the
// first invalid field. It reports whether submission may proceed.
func (f *Form) Submit() bool {
	var firstInvalid *Field
	for _, field := range f.Fields {
		if !ValidateField(field) && firstInvalid == nil {
			firstInvalid = field
		}
	}

	f.Element.AddClass(ClassValidated)

	if firstInvalid != nil {
		_ = f.tree.Focus(firstInvalid.Input)
		return false
	}
	return true
}

// Blur revalidates a field when it loses focus.
func (f *Form) Blur(field *Field) {
	ValidateField(field)
}

// Input sets a field's value and revalidates it only if it is already
// marked invalid, so errors clear while typing without flagging new ones.
func (f *Form) Input(field *Field, value string) {
	field.Input.SetValue(value)
	if field.Input.HasClass(ClassInvalid) {
		ValidateField(field)
	}
}
