package web

import (
	"strings"
	"testing"

	g "maragu.dev/gomponents"

	"github.com/janisto/profile-console/internal/profile"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	if err := n.Render(&b); err != nil {
		t.Fatalf("render: %v", err)
	}
	return b.String()
}

func TestProfilePageDeleteConfirmation(t *testing.T) {
	out := render(t, ProfilePage(&profile.Profile{ID: "u1", Name: "ann", Email: "ann@x.com"}, Notices{}))
	if !strings.Contains(out, `hx-confirm="`+confirmDelete+`"`) {
		t.Error("expected delete confirmation")
	}
	if !strings.Contains(out, `hx-post="/profile/delete"`) {
		t.Error("expected htmx delete")
	}
	if !strings.Contains(out, `href="/profile/delete"`) {
		t.Error("expected confirmation link without htmx")
	}
	if !strings.Contains(out, `hx-vals=`) {
		t.Error("expected htmx delete to carry the confirmation")
	}
	if !strings.Contains(out, `<div class="avatar">A</div>`) {
		t.Error("expected upper-cased initial")
	}
}

func TestNavbar(t *testing.T) {
	with := render(t, navbar(&profile.Profile{Name: "Ann Lee"}))
	if !strings.Contains(with, "Ann Lee") || !strings.Contains(with, "Edit Profile") {
		t.Errorf("expected user links, got %s", with)
	}
	if strings.Contains(with, "Login") {
		t.Error("unexpected login link")
	}
	without := render(t, navbar(nil))
	if !strings.Contains(without, "Login") {
		t.Error("expected login link")
	}
}

func TestNoticesAreEscaped(t *testing.T) {
	out := render(t, noticeList(Notices{Error: []string{"<script>x</script>"}}))
	if strings.Contains(out, "<script>") {
		t.Error("notice text must be escaped")
	}
	if !strings.Contains(out, `role="alert"`) {
		t.Error("expected alert role")
	}
}

func TestLoadingPagePolls(t *testing.T) {
	out := render(t, LoadingPage())
	for _, want := range []string{`hx-get="/profile"`, `hx-trigger="every 1s"`, "Loading profile..."} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s", want)
		}
	}
}

func TestInitial(t *testing.T) {
	if got := initial(""); got != "?" {
		t.Errorf("expected ?, got %q", got)
	}
	if got := initial("éva"); got != "É" {
		t.Errorf("expected É, got %q", got)
	}
}

func TestConfirmDeletePage(t *testing.T) {
	out := render(t, ConfirmDeletePage(&profile.Profile{ID: "u1", Name: "Ann Lee"}, Notices{}))
	if !strings.Contains(out, confirmDelete) {
		t.Error("expected confirmation question")
	}
	if !strings.Contains(out, `<form method="post" action="/profile/delete">`) {
		t.Errorf("expected delete form, got %s", out)
	}
	if !strings.Contains(out, `href="/profile"`) {
		t.Error("expected cancel link")
	}
}
