// Package markup holds the small HTML-building helpers shared by the
// hand-written templ components.
package markup

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"
)

// E escapes text for element content and quoted attribute values.
func E(value string) string {
	return templ.EscapeString(value)
}

// Builder accumulates HTML. Write errors surface once, from Flush.
type Builder struct {
	strings.Builder
}

// Raw appends trusted markup.
func (b *Builder) Raw(parts ...string) *Builder {
	for _, part := range parts {
		b.WriteString(part)
	}
	return b
}

// Text appends escaped text.
func (b *Builder) Text(value string) *Builder {
	b.WriteString(E(value))
	return b
}

// Rawf appends formatted markup. Arguments are not escaped.
func (b *Builder) Rawf(format string, args ...any) *Builder {
	fmt.Fprintf(&b.Builder, format, args...)
	return b
}

// Component renders build into a templ.Component.
func Component(build func(b *Builder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b Builder
		build(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Alert renders a message box. Empty messages render nothing.
func Alert(kind, message string) string {
	if message == "" {
		return ""
	}
	class := "border-red-300 bg-red-50 text-red-800"
	if kind == "success" {
		class = "border-green-300 bg-green-50 text-green-800"
	}
	return `<div class="mb-4 rounded border px-4 py-3 text-sm ` + class + `" role="alert">` + E(message) + `</div>`
}

// Input renders a labelled form input.
func Input(label, name, inputType, value string, required bool) string {
	req := ""
	if required {
		req = " required"
	}
	return `<label class="block text-sm font-medium text-gray-700">` + E(label) +
		`<input class="mt-1 block w-full rounded border-gray-300" type="` + E(inputType) +
		`" name="` + E(name) + `" value="` + E(value) + `"` + req + `></label>`
}

// Option is one entry of a select element.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Select renders a labelled select element.
func Select(label, name string, options []Option) string {
	var b strings.Builder
	b.WriteString(`<label class="block text-sm font-medium text-gray-700">` + E(label) +
		`<select class="mt-1 block w-full rounded border-gray-300" name="` + E(name) + `">`)
	for _, opt := range options {
		sel := ""
		if opt.Selected {
			sel = " selected"
		}
		b.WriteString(`<option value="` + E(opt.Value) + `"` + sel + `>` + E(opt.Label) + `</option>`)
	}
	b.WriteString(`</select></label>`)
	return b.String()
}

// PostButton renders a one-button form posting to action.
func PostButton(action, label, class, confirm string) string {
	onsubmit := ""
	if confirm != "" {
		onsubmit = ` onsubmit="return confirm('` + E(confirm) + `')"`
	}
	return `<form method="post" action="` + E(action) + `" class="inline"` + onsubmit +
		`><button type="submit" class="` + E(class) + `">` + E(label) + `</button></form>`
}

// Price renders an amount in minor units.
func Price(cents int64) string {
	return fmt.Sprintf("%d.%02d CZK", cents/100, cents%100)
}

// LocalDateTime renders t for an HTML datetime-local input.
func LocalDateTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format("2006-01-02T15:04")
}
