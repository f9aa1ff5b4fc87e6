package users

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/codr1/CourtPlay/internal/models"
	"github.com/codr1/CourtPlay/internal/templates/markup"
)

type UserRow struct {
	ID        int64
	Email     string
	Name      string
	Phone     string
	Role      models.Role
	CreatedAt string
}

type AdminData struct {
	Users []UserRow
	// SelfID is the signed-in admin, whose own role cannot be edited here.
	SelfID  int64
	Message string
	Error   string
}

func roleOptions(current models.Role) []markup.Option {
	roles := models.Roles()
	options := make([]markup.Option, 0, len(roles))
	for _, role := range roles {
		options = append(options, markup.Option{Value: role.String(), Label: role.String(), Selected: role == current})
	}
	return options
}

func AdminPage(data AdminData) templ.Component {
	return markup.Component(func(b *markup.Builder) {
		b.Raw(`<h1 class="mb-4 text-2xl font-semibold">Users</h1>`,
			markup.Alert("success", data.Message), markup.Alert("error", data.Error),
			`<table class="w-full bg-white text-sm shadow"><thead><tr class="text-left">`,
			`<th class="p-2">Name</th><th class="p-2">Email</th><th class="p-2">Phone</th>`,
			`<th class="p-2">Joined</th><th class="p-2">Role</th></tr></thead><tbody>`)
		for _, user := range data.Users {
			id := strconv.FormatInt(user.ID, 10)
			b.Raw(`<tr class="border-t"><td class="p-2">`).Text(user.Name).
				Raw(`</td><td class="p-2">`).Text(user.Email).
				Raw(`</td><td class="p-2">`).Text(user.Phone).
				Raw(`</td><td class="p-2">`).Text(user.CreatedAt).
				Raw(`</td><td class="p-2">`)
			if user.ID == data.SelfID {
				b.Text(user.Role.String())
			} else {
				b.Raw(`<form method="post" action="/admin/users/`, id, `/role" class="flex items-end gap-2">`,
					markup.Select("", "role", roleOptions(user.Role)),
					`<button type="submit" class="text-blue-600">Set</button></form>`)
			}
			b.Raw(`</td></tr>`)
		}
		b.Raw(`</tbody></table>`)
	})
}
