package views

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/inkwell"
)

func csrfField(token string) string {
	return `<input type="hidden" name="_csrf" value="` + esc(token) + `">`
}

func adminPage(title, body string) templ.Component {
	return raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>` + esc(title) +
		`</title><meta name="robots" content="noindex"></head><body class="admin">` + body + `</body></html>`)
}

// AdminLogin renders the password form.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	var b strings.Builder
	b.WriteString(`<h1>Admin</h1>`)
	if showError {
		b.WriteString(`<p class="error" role="alert">Invalid password.</p>`)
	}
	b.WriteString(`<form method="post" action="/admin/login/">` + csrfField(csrfToken))
	b.WriteString(`<label>Password <input type="password" name="password" required autofocus></label>`)
	b.WriteString(`<button type="submit">Log in</button></form>`)
	return adminPage("Admin login", b.String())
}

// AdminDashboard lists every post, drafts included, next to an empty editor.
func AdminDashboard(posts []inkwell.BlogPost, message string, csrfToken string) templ.Component {
	var b strings.Builder
	b.WriteString(`<h1>Posts</h1>`)
	b.WriteString(`<form method="post" action="/admin/logout/">` + csrfField(csrfToken) + `<button type="submit">Log out</button></form>`)
	if message != "" {
		b.WriteString(`<p class="message" role="status">` + esc(message) + `</p>`)
	}
	b.WriteString(`<table class="admin-posts"><thead><tr><th>Title</th><th>Date</th><th>Status</th><th></th></tr></thead><tbody>`)
	for _, p := range posts {
		slug := esc(inkwell.PathEscape(p.Slug))
		status := "draft"
		if p.Published {
			status = "published"
		}
		b.WriteString(`<tr><td><a href="/admin/post/` + slug + `/">` + esc(p.Title) + `</a></td>`)
		b.WriteString(`<td>` + esc(p.Date()) + `</td><td>` + status + `</td><td>`)
		b.WriteString(`<form method="post" action="/admin/post/` + slug + `/delete/">` + csrfField(csrfToken) + `<button type="submit">Delete</button></form>`)
		b.WriteString(`</td></tr>`)
	}
	b.WriteString(`</tbody></table><h2>New post</h2>`)
	writeForm(&b, inkwell.BlogPost{}, csrfToken)
	return adminPage("Admin", b.String())
}

// AdminForm renders the editor for post.
func AdminForm(post inkwell.BlogPost, csrfToken string) templ.Component {
	var b strings.Builder
	writeForm(&b, post, csrfToken)
	return raw(b.String())
}

func writeForm(b *strings.Builder, post inkwell.BlogPost, csrfToken string) {
	b.WriteString(`<form class="post-form" method="post" action="/admin/save/">` + csrfField(csrfToken))
	b.WriteString(`<label>Title <input name="title" value="` + esc(post.Title) + `" required></label>`)
	b.WriteString(`<label>Slug <input name="slug" value="` + esc(post.Slug) + `"></label>`)
	b.WriteString(`<label>Description <input name="description" maxlength="160" value="` + esc(post.Description) + `" required></label>`)
	b.WriteString(`<label>Date <input type="date" name="date" value="` + esc(post.Date()) + `"></label>`)
	b.WriteString(`<label>Hero image <input name="image" value="` + esc(post.Image) + `"></label>`)
	b.WriteString(`<label>Content <textarea name="content" rows="20">` + esc(post.Content) + `</textarea></label>`)
	checked := ""
	if post.Published {
		checked = " checked"
	}
	b.WriteString(`<label><input type="checkbox" name="published" value="1"` + checked + `> Published</label>`)
	b.WriteString(`<button type="submit">Save</button></form>`)
}
