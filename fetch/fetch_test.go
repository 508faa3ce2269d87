package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

const registerPage = `<!DOCTYPE html>
<html>
<head><title>Development Register</title></head>
<body>
<nav><a href="/">Home</a></nav>
<main>
<ul>
<li><a href="/documents/register-2019-05.pdf">May 2019</a></li>
<li><a href="documents/register-2019-06.pdf">June 2019</a></li>
<li><a href="https://example.org/other/register-2019-05.pdf">Mirror</a></li>
<li><a href="/documents/register-2019-05.pdf">May 2019 (again)</a></li>
<li><a href="/documents/notes.docx">Notes</a></li>
<li><a href="mailto:council@example.com">Contact</a></li>
</ul>
</main>
</body>
</html>`

func TestDocumentLinks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(registerPage))
	}))
	defer srv.Close()

	links, err := New().DocumentLinks(context.Background(), srv.URL+"/register")
	if err != nil {
		t.Fatalf("DocumentLinks() failed: %v", err)
	}

	want := []string{
		srv.URL + "/documents/register-2019-05.pdf",
		srv.URL + "/documents/register-2019-06.pdf",
		"https://example.org/other/register-2019-05.pdf",
	}
	if !reflect.DeepEqual(links, want) {
		t.Errorf("DocumentLinks() = %v, want %v", links, want)
	}
}

func TestDocumentLinksBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := New().DocumentLinks(context.Background(), srv.URL); err == nil {
		t.Error("DocumentLinks() succeeded on 404, want error")
	}
}

func TestDocumentLinksContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New().DocumentLinks(ctx, srv.URL); err == nil {
		t.Error("DocumentLinks() succeeded with cancelled context, want error")
	}
}
