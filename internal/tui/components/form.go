package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hanvion/healthcost/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// FieldKind controls how a form value is parsed
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumber
	FieldInteger
	FieldBool
	FieldChoice
)

// Field describes one input of a Form
type Field struct {
	Key     string
	Label   string
	Kind    FieldKind
	Default string
	Options []string // FieldChoice only
}

// Form is a vertical list of text inputs with a single focused field
type Form struct {
	fields []Field
	inputs []textinput.Model
	focus  int
}

// NewForm builds a form with every field prefilled from its default
func NewForm(fields ...Field) *Form {
	f := &Form{fields: fields, inputs: make([]textinput.Model, len(fields))}
	for i, field := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 48
		in.Width = 24
		in.SetValue(field.Default)
		switch field.Kind {
		case FieldBool:
			in.Placeholder = "yes / no"
		case FieldChoice:
			in.Placeholder = strings.Join(field.Options, " / ")
		}
		f.inputs[i] = in
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

// Focused returns the index of the focused field
func (f *Form) Focused() int {
	return f.focus
}

// Next moves focus to the following field, wrapping around
func (f *Form) Next() {
	f.move(1)
}

// Prev moves focus to the preceding field, wrapping around
func (f *Form) Prev() {
	f.move(-1)
}

func (f *Form) move(delta int) {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// Update forwards a message to the focused input
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// SetValue replaces the raw text of a field
func (f *Form) SetValue(key, value string) {
	for i, field := range f.fields {
		if field.Key == key {
			f.inputs[i].SetValue(value)
			return
		}
	}
}

// Values returns the raw text of every field keyed by field key
func (f *Form) Values() Values {
	v := Values{raw: make(map[string]string, len(f.fields)), fields: make(map[string]Field, len(f.fields))}
	for i, field := range f.fields {
		v.raw[field.Key] = strings.TrimSpace(f.inputs[i].Value())
		v.fields[field.Key] = field
	}
	return v
}

// View renders one labelled row per field
func (f *Form) View() string {
	var b strings.Builder
	for i, field := range f.fields {
		label := tuistyles.FieldLabelStyle
		cursor := "  "
		if i == f.focus {
			label = tuistyles.FocusedFieldLabelStyle
			cursor = "> "
		}
		b.WriteString(cursor + label.Render(field.Label) + f.inputs[i].View() + "\n")
	}
	return b.String()
}

// Values gives typed access to submitted form text
type Values struct {
	raw    map[string]string
	fields map[string]Field
}

// String returns the trimmed text of a field
func (v Values) String(key string) string {
	return v.raw[key]
}

func (v Values) label(key string) string {
	if f, ok := v.fields[key]; ok {
		return f.Label
	}
	return key
}

// Decimal parses a dollar or percent field; empty text is zero
func (v Values) Decimal(key string) (decimal.Decimal, error) {
	s := strings.TrimPrefix(strings.ReplaceAll(v.raw[key], ",", ""), "$")
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be a number", v.label(key))
	}
	return d, nil
}

// Float parses a numeric field; empty text is zero
func (v Values) Float(key string) (float64, error) {
	s := v.raw[key]
	if s == "" {
		return 0, nil
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", v.label(key))
	}
	return x, nil
}

// Int parses a whole-number field; empty text is zero
func (v Values) Int(key string) (int, error) {
	s := v.raw[key]
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", v.label(key))
	}
	return n, nil
}

// Bool accepts yes/no, y/n and true/false in any case
func (v Values) Bool(key string) (bool, error) {
	switch strings.ToLower(v.raw[key]) {
	case "y", "yes", "true", "1":
		return true, nil
	case "", "n", "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("%s must be yes or no", v.label(key))
}

// Choice returns the option matching the field text, ignoring case
func (v Values) Choice(key string) (string, error) {
	s := v.raw[key]
	for _, opt := range v.fields[key].Options {
		if strings.EqualFold(opt, s) {
			return opt, nil
		}
	}
	return "", fmt.Errorf("%s must be one of %s", v.label(key), strings.Join(v.fields[key].Options, ", "))
}
