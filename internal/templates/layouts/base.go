package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/codr1/CourtPlay/internal/models"
	"github.com/codr1/CourtPlay/internal/templates/markup"
)

// NavUser is the signed-in user as the navigation bar shows them.
type NavUser struct {
	Name string
	Role models.Role
}

type Page struct {
	AppName string
	Title   string
	User    *NavUser
}

type navLink struct {
	href  string
	label string
}

func navLinks(user *NavUser) []navLink {
	if user == nil {
		return []navLink{{"/login", "Sign in"}}
	}
	links := []navLink{
		{"/dashboard", "Dashboard"},
		{"/reservations/calendar", "Book"},
		{"/reservations/mine", "My reservations"},
		{"/courts", "Courts"},
	}
	if user.Role.CanManage() {
		links = append(links,
			navLink{"/admin/reservations", "All reservations"},
			navLink{"/admin/courts", "Manage courts"},
			navLink{"/admin/price-list", "Price list"},
			navLink{"/admin/time-blocks", "Time blocks"},
		)
	}
	if user.Role.IsAdmin() {
		links = append(links, navLink{"/admin/users", "Users"})
	}
	return append(links, navLink{"/profile", "Profile"})
}

// Base wraps content in the shared document shell and navigation.
func Base(content templ.Component, page Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := page.AppName
		if page.Title != "" {
			title = page.Title + " | " + page.AppName
		}

		var b markup.Builder
		b.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>`).Text(title).Raw(`</title>`,
			`<link rel="stylesheet" href="/static/css/main.css">`,
			`<script src="/static/js/htmx.min.js" defer></script>`,
			`</head><body class="min-h-screen bg-gray-50">`,
			`<nav class="bg-white shadow"><div class="mx-auto flex max-w-6xl items-center gap-4 px-4 py-3">`,
			`<a href="/" class="font-semibold">`).Text(page.AppName).Raw(`</a>`)
		for _, link := range navLinks(page.User) {
			b.Raw(`<a class="text-sm text-gray-700 hover:underline" href="`, link.href, `">`).Text(link.label).Raw(`</a>`)
		}
		if page.User != nil {
			b.Raw(`<span class="ml-auto text-sm text-gray-500">`).Text(page.User.Name).Raw(`</span>`,
				markup.PostButton("/logout", "Sign out", "text-sm text-gray-700 hover:underline", ""))
		}
		b.Raw(`</div></nav><main class="mx-auto max-w-6xl px-4 py-6">`)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// Home is the public landing page.
func Home(appName string, signedIn bool) templ.Component {
	return markup.Component(func(b *markup.Builder) {
		b.Raw(`<section class="py-12 text-center"><h1 class="text-3xl font-bold">`).Text(appName).Raw(`</h1>`,
			`<p class="mt-4 text-gray-600">Reserve indoor and outdoor courts in a few clicks.</p>`,
			`<div class="mt-8 flex justify-center gap-4">`)
		if signedIn {
			b.Raw(`<a class="rounded bg-blue-600 px-4 py-2 text-white" href="/reservations/calendar">Book a court</a>`,
				`<a class="rounded border px-4 py-2" href="/courts">View courts</a>`)
		} else {
			b.Raw(`<a class="rounded bg-blue-600 px-4 py-2 text-white" href="/login">Sign in</a>`)
		}
		b.Raw(`</div></section>`)
	})
}
