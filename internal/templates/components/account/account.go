package account

import (
	"github.com/a-h/templ"

	"github.com/codr1/CourtPlay/internal/templates/markup"
)

type ProfileForm struct {
	Email   string
	Name    string
	Phone   string
	Message string
	Error   string
}

type PasswordForm struct {
	Message string
	Error   string
}

func ProfilePage(form ProfileForm) templ.Component {
	return markup.Component(func(b *markup.Builder) {
		b.Raw(`<div class="mx-auto max-w-md space-y-6">`,
			`<form method="post" action="/profile" class="space-y-3 rounded bg-white p-6 shadow">`,
			`<h1 class="text-xl font-semibold">Profile</h1>`,
			markup.Alert("success", form.Message), markup.Alert("error", form.Error),
			`<p class="text-sm text-gray-600">`).Text(form.Email).Raw(`</p>`,
			markup.Input("Name", "name", "text", form.Name, true),
			markup.Input("Phone", "phone", "tel", form.Phone, false),
			`<button type="submit" class="rounded bg-blue-600 px-4 py-2 text-white">Save</button></form>`,
			`<p class="text-sm"><a class="text-blue-600" href="/profile/password">Change password</a></p></div>`)
	})
}

func PasswordPage(form PasswordForm) templ.Component {
	return markup.Component(func(b *markup.Builder) {
		b.Raw(`<form method="post" action="/profile/password" class="mx-auto max-w-md space-y-3 rounded bg-white p-6 shadow">`,
			`<h1 class="text-xl font-semibold">Change password</h1>`,
			markup.Alert("success", form.Message), markup.Alert("error", form.Error),
			markup.Input("Current password", "current_password", "password", "", true),
			markup.Input("New password", "new_password", "password", "", true),
			markup.Input("Repeat new password", "confirm_password", "password", "", true),
			`<button type="submit" class="rounded bg-blue-600 px-4 py-2 text-white">Change password</button></form>`)
	})
}
