package processor

import (
	"testing"
)

func TestHTMLProcessor_Extract_TextDirective(t *testing.T) {
	p := NewHTMLProcessor()

	m, err := p.Extract(`<h1 data-i18n="title"> Hello </h1>`)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if v, ok := m.Get("title"); !ok || v != "Hello" {
		t.Errorf("Expected title -> 'Hello', got %q (present=%v)", v, ok)
	}
}

func TestHTMLProcessor_Extract_AttributeDirective(t *testing.T) {
	p := NewHTMLProcessor()

	m, err := p.Extract(`<a href="https://x" data-i18n="[href]linkKey"></a>`)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if m.Len() != 1 {
		t.Fatalf("Expected 1 binding, got %v", m.Keys())
	}
	if v, _ := m.Get("linkKey"); v != "https://x" {
		t.Errorf("Expected linkKey -> 'https://x', got %q", v)
	}
}

func TestHTMLProcessor_Extract_MultipleDirectives(t *testing.T) {
	p := NewHTMLProcessor()

	html := `<input placeholder="Search…" title="Find things" data-i18n="[placeholder]search.hint;[title]search.title;[alt]search.alt">`
	m, err := p.Extract(html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	want := map[string]string{
		"search.hint":  "Search…",
		"search.title": "Find things",
		"search.alt":   "",
	}
	for k, w := range want {
		if v, ok := m.Get(k); !ok || v != w {
			t.Errorf("%s = %q (present=%v), want %q", k, v, ok, w)
		}
	}
}

func TestHTMLProcessor_Extract_NestedText(t *testing.T) {
	p := NewHTMLProcessor()

	html := `<p data-i18n="intro">
		Welcome to <strong>our</strong> site.<!-- hidden -->
	</p>`
	m, err := p.Extract(html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if v, _ := m.Get("intro"); v != "Welcome to our site." {
		t.Errorf("Expected nested text, got %q", v)
	}
}

func TestHTMLProcessor_Extract_DocumentOrderAndOverwrite(t *testing.T) {
	p := NewHTMLProcessor()

	html := `<div>
		<span data-i18n="b">First B</span>
		<span data-i18n="a">A</span>
		<span data-i18n="b">Second B</span>
	</div>`
	m, err := p.Extract(html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	keys := m.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Errorf("Expected keys [b a], got %v", keys)
	}
	if v, _ := m.Get("b"); v != "Second B" {
		t.Errorf("Expected later element to win, got %q", v)
	}
}

func TestHTMLProcessor_Extract_MalformedDirectiveIgnored(t *testing.T) {
	p := NewHTMLProcessor()

	m, err := p.Extract(`<img alt="x" data-i18n="[alt missing;ok">`)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if m.Len() != 1 || !m.Has("ok") {
		t.Errorf("Expected only 'ok', got %v", m.Keys())
	}
}

func TestHTMLProcessor_Extract_KeysVerbatim(t *testing.T) {
	p := NewHTMLProcessor()

	m, err := p.Extract(`<b data-i18n="a; b">X</b>`)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if !m.Has("a") || !m.Has(" b") {
		t.Errorf("Expected keys 'a' and ' b', got %q", m.Keys())
	}
}

func TestHTMLProcessor_Extract_AttributeNameCase(t *testing.T) {
	p := NewHTMLProcessor()

	m, err := p.Extract(`<img ALT="Logo" DATA-I18N="[Alt]logo">`)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if v, _ := m.Get("logo"); v != "Logo" {
		t.Errorf("Expected case-insensitive attribute lookup, got %q", v)
	}
}

func TestHTMLProcessor_WithAttribute(t *testing.T) {
	p := NewHTMLProcessor(WithAttribute("data-t"))

	if p.Attribute() != "data-t" {
		t.Errorf("Expected attribute 'data-t', got %q", p.Attribute())
	}

	m, err := p.Extract(`<p data-t="x">X</p><p data-i18n="y">Y</p>`)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if m.Len() != 1 || !m.Has("x") {
		t.Errorf("Expected only 'x', got %v", m.Keys())
	}
}

func TestHTMLProcessor_Scan(t *testing.T) {
	p := NewHTMLProcessor()

	bindings, err := p.Scan(`<a href="/docs" data-i18n="nav.docs;[href]nav.docs.url">Docs</a>`)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(bindings) != 2 {
		t.Fatalf("Expected 2 bindings, got %d", len(bindings))
	}
	if b := bindings[0]; b.Key != "nav.docs" || b.Value != "Docs" || b.Tag != "a" || b.Attr != "" {
		t.Errorf("Unexpected text binding: %+v", b)
	}
	if b := bindings[1]; b.Key != "nav.docs.url" || b.Value != "/docs" || b.Attr != "href" {
		t.Errorf("Unexpected attribute binding: %+v", b)
	}
}

func TestHTMLProcessor_EmptyContent(t *testing.T) {
	p := NewHTMLProcessor()

	for _, content := range []string{"", "   \n\t  ", "<p>No annotations</p>"} {
		m, err := p.Extract(content)
		if err != nil {
			t.Fatalf("Extract(%q) failed: %v", content, err)
		}
		if m.Len() != 0 {
			t.Errorf("Extract(%q) = %v, want empty", content, m.Keys())
		}
	}
}

func TestHTMLProcessor_EmptyText(t *testing.T) {
	p := NewHTMLProcessor()

	m, err := p.Extract(`<i class="icon" data-i18n="icon"></i>`)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	v, ok := m.Get("icon")
	if !ok || v != "" {
		t.Errorf("Expected icon bound to empty text, got %q (present=%v)", v, ok)
	}
}
