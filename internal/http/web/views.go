package web

import (
	"strconv"
	"strings"
	"unicode/utf8"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	c "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"

	"github.com/janisto/profile-console/internal/profile"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

const (
	confirmDelete = "Are you sure you want to delete your profile?"
	confirmField  = "confirm"
)

const stylesheet = `
body{font-family:system-ui,sans-serif;margin:0;background:#f5f7fb;color:#1d2433}
nav{display:flex;justify-content:space-between;align-items:center;padding:1rem 2rem;background:#1976d2;color:#fff}
nav a{color:#fff;text-decoration:none;font-weight:600;margin-left:1rem}
main{max-width:32rem;margin:2rem auto;padding:0 1rem}
.card{background:#fff;border-radius:12px;box-shadow:0 8px 32px rgba(25,118,210,.15);padding:2rem}
.avatar{width:4rem;height:4rem;border-radius:50%;background:#1976d2;color:#fff;display:flex;align-items:center;justify-content:center;font-size:2rem;margin:0 auto 1rem}
label{display:block;margin-top:1rem;font-weight:600}
input{width:100%;padding:.5rem;margin-top:.25rem;box-sizing:border-box}
button,.button{margin-top:1.5rem;padding:.6rem 1.2rem;border:0;border-radius:8px;background:#1976d2;color:#fff;font-weight:600;cursor:pointer;text-decoration:none;display:inline-block}
.danger{background:#d32f2f}
dialog.notice{position:static;display:flex;justify-content:space-between;align-items:center;border:0;border-radius:8px;padding:.75rem 1rem;margin:0 0 1rem}
dialog.notice:not([open]){display:none}
dialog.notice button{margin:0;background:transparent;color:inherit}
.notice-success{background:#e8f5e9;color:#1b5e20}
.notice-error{background:#fdecea;color:#b71c1c}
.field-error{color:#b71c1c;font-size:.875rem}
`

func page(title string, current *profile.Profile, notices Notices, body ...g.Node) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    title + " | Profile Management",
		Language: "en",
		Head: []g.Node{
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			StyleEl(g.Raw(stylesheet)),
			Script(Src(htmxSrc), Defer()),
		},
		Body: []g.Node{
			navbar(current),
			Main(ID("content"),
				noticeList(notices),
				g.Group(body),
			),
		},
	})
}

func navbar(current *profile.Profile) g.Node {
	return Nav(
		A(Href("/"), Strong(g.Text("Profile Management"))),
		Div(
			g.If(current != nil && current.Name != "",
				g.Group([]g.Node{
					Span(Class("nav-user"), g.Text(nameOf(current))),
					A(Href("/profile"), g.Text("Profile")),
					A(Href("/profile-form"), g.Text("Edit Profile")),
				}),
			),
			g.If(current == nil || current.Name == "",
				A(Href("/profile-form"), g.Text("Login")),
			),
		),
	)
}

func nameOf(p *profile.Profile) string {
	if p == nil {
		return ""
	}
	return p.Name
}

func noticeList(n Notices) g.Node {
	nodes := make([]g.Node, 0, len(n.Success)+len(n.Error))
	for _, msg := range n.Error {
		nodes = append(nodes, notice("notice-error", "alert", msg))
	}
	for _, msg := range n.Success {
		nodes = append(nodes, notice("notice-success", "status", msg))
	}
	return g.Group(nodes)
}

// notice renders a dismissible message; the close button needs no script.
func notice(class, role, msg string) g.Node {
	return g.El("dialog", Class("notice "+class), Role(role), g.Attr("open"),
		Span(g.Text(msg)),
		form(Method("dialog"),
			Button(Type("submit"), Aria("label", "Dismiss"), g.Text("×")),
		),
	)
}

// FormPage renders the create/edit form. fieldErr, when set, is shown under its field.
func FormPage(current *profile.Profile, input profile.Form, fieldErr *profile.ValidationError, notices Notices) g.Node {
	title := "Create Profile"
	submit := "Create"
	if current != nil {
		title = "Edit Profile"
		submit = "Save"
	}
	return page(title, current, notices,
		Div(Class("card"),
			H1(g.Text(title)),
			form(Method("post"), Action("/profile-form"), g.Attr("novalidate"),
				field("name", "Name", "text", input.Name, fieldErr, AutoComplete("name")),
				field("email", "Email", "email", input.Email, fieldErr, AutoComplete("email")),
				field("age", "Age (optional)", "number", input.Age, fieldErr, Min("18"), Max("120")),
				Button(Type("submit"), g.Text(submit)),
			),
		),
	)
}

func field(name, label, typ, value string, fieldErr *profile.ValidationError, extra ...g.Node) g.Node {
	hasErr := fieldErr != nil && fieldErr.Field == name
	return Div(
		Label(For(name), g.Text(label)),
		Input(ID(name), Name(name), Type(typ), Value(value),
			g.If(hasErr, Aria("invalid", "true")),
			g.Group(extra),
		),
		g.If(hasErr, P(Class("field-error"), g.Text(errMessage(fieldErr)))),
	)
}

func errMessage(e *profile.ValidationError) string {
	if e == nil {
		return ""
	}
	return e.Message
}

// ProfilePage renders the profile card with edit and delete actions.
func ProfilePage(p *profile.Profile, notices Notices) g.Node {
	age := "Not Provided"
	if p.Age != nil && *p.Age > 0 {
		age = strconv.Itoa(*p.Age)
	}
	return page("Profile", p, notices,
		Div(Class("card"),
			Div(Class("avatar"), g.Text(initial(p.Name))),
			H1(g.Text(p.Name)),
			H2(g.Text("Profile Details:")),
			P(Strong(g.Text("Email: ")), g.Text(p.Email)),
			P(Strong(g.Text("Age: ")), g.Text(age)),
			Div(
				A(Class("button"), Href("/profile-form"), g.Text("Edit")),
				g.Text(" "),
				A(Class("button danger"), Href("/profile/delete"),
					hx.Post("/profile/delete"),
					hx.Vals(`{"`+confirmField+`":"yes"}`),
					hx.Confirm(confirmDelete),
					hx.Target("body"),
					g.Text("Delete"),
				),
			),
		),
	)
}

// ConfirmDeletePage asks before deleting when the delete link is followed
// without htmx.
func ConfirmDeletePage(p *profile.Profile, notices Notices) g.Node {
	return page("Delete Profile", p, notices,
		Div(Class("card"),
			H1(g.Text("Delete Profile")),
			P(g.Text(confirmDelete)),
			form(Method("post"), Action("/profile/delete"),
				Input(Type("hidden"), Name(confirmField), Value("yes")),
				Button(Class("danger"), Type("submit"), g.Text("Delete")),
				g.Text(" "),
				A(Class("button"), Href("/profile"), g.Text("Cancel")),
			),
		),
	)
}

func form(children ...g.Node) g.Node {
	return g.El("form", children...)
}

func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "?"
	}
	return strings.ToUpper(string(r))
}

// NoProfilePage is shown when neither memory nor the remote service holds a profile.
func NoProfilePage(notices Notices) g.Node {
	return page("No Profile Found", nil, notices,
		Div(Class("card"),
			H1(g.Text("No Profile Found")),
			P(g.Text("You can create a user by clicking the login button below.")),
			A(Class("button"), Href("/profile-form"), g.Text("Login")),
		),
	)
}

// LoadingPage polls /profile until the in-flight operation settles.
func LoadingPage() g.Node {
	return page("Loading", nil, Notices{},
		Div(Class("card"),
			hx.Get("/profile"),
			hx.Trigger("every 1s"),
			hx.Select("#content"),
			hx.Target("#content"),
			hx.Swap("outerHTML"),
			P(Role("status"), g.Text("Loading profile...")),
		),
	)
}

// NotFoundPage renders the 404 view.
func NotFoundPage(current *profile.Profile) g.Node {
	return page("Page Not Found", current, Notices{},
		Div(Class("card"),
			H1(g.Text("404")),
			P(g.Text("The page you are looking for does not exist.")),
			A(Class("button"), Href("/"), g.Text("Go Home")),
		),
	)
}
