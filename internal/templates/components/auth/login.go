package auth

import (
	"github.com/a-h/templ"

	"github.com/codr1/CourtPlay/internal/templates/markup"
)

type LoginData struct {
	Email string
	Next  string
	Error string
}

// LoginForm is the swappable form fragment. HTMX posts replace it in place.
func LoginForm(data LoginData) templ.Component {
	return markup.Component(func(b *markup.Builder) {
		writeLoginForm(b, data)
	})
}

func LoginPage(data LoginData) templ.Component {
	return markup.Component(func(b *markup.Builder) {
		b.Raw(`<div class="mx-auto max-w-sm rounded bg-white p-6 shadow">`,
			`<h1 class="mb-4 text-xl font-semibold">Sign in</h1>`)
		writeLoginForm(b, data)
		b.Raw(`</div>`)
	})
}

func writeLoginForm(b *markup.Builder, data LoginData) {
	b.Raw(`<form id="login-form" method="post" action="/login" hx-post="/login" hx-target="#login-form" hx-swap="outerHTML" class="space-y-4">`,
		markup.Alert("error", data.Error),
		markup.Input("Email", "email", "email", data.Email, true),
		markup.Input("Password", "password", "password", "", true),
		`<input type="hidden" name="next" value="`, markup.E(data.Next), `">`,
		`<button type="submit" class="w-full rounded bg-blue-600 px-4 py-2 text-white">Sign in</button>`,
		`</form>`)
}
