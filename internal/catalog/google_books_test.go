package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

const volumenJSON = `{
	"id": "abc123",
	"volumeInfo": {
		"title": "  Cien años de soledad ",
		"authors": ["Gabriel García Márquez"],
		"categories": ["Fiction / Literary"],
		"language": "ES",
		"description": "La saga de los Buendía.",
		"publisher": " Sudamericana ",
		"publishedDate": "1967",
		"industryIdentifiers": [
			{"type": "OTHER", "identifier": "X"},
			{"type": "ISBN_13", "identifier": "978-84-376-0494-7"}
		],
		"imageLinks": {"thumbnail": "http://img/abc123.jpg"}
	}
}`

func TestSearch(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/volumes" {
			t.Errorf("path = %q, quería /volumes", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"totalItems": 1, "items": [` + volumenJSON + `]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "mi-key", 2*time.Second)
	vols, err := c.Search(context.Background(), `subject:"fiction"`, "es", 40, "relevance")
	if err != nil {
		t.Fatal(err)
	}
	if len(vols) != 1 {
		t.Fatalf("vinieron %d volúmenes, quería 1", len(vols))
	}

	v := vols[0]
	if v.ID != "abc123" {
		t.Errorf("ID = %q", v.ID)
	}
	if v.Title != "Cien años de soledad" {
		t.Errorf("Title sin trim: %q", v.Title)
	}
	if v.Language != "es" {
		t.Errorf("Language = %q, quería minúsculas", v.Language)
	}
	if v.ISBN != "9788437604947" {
		t.Errorf("ISBN = %q, quería el ISBN_13 sin guiones", v.ISBN)
	}
	if v.Publisher != "Sudamericana" {
		t.Errorf("Publisher sin trim: %q", v.Publisher)
	}

	for param, want := range map[string]string{
		"q":            `subject:"fiction"`,
		"printType":    "books",
		"maxResults":   "40",
		"langRestrict": "es",
		"orderBy":      "relevance",
		"key":          "mi-key",
	} {
		if got := gotQuery.Get(param); got != want {
			t.Errorf("param %s = %q, quería %q", param, got, want)
		}
	}
}

func TestSearchStatusNo200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 2*time.Second)
	if _, err := c.Search(context.Background(), "q", "es", 10, ""); err == nil {
		t.Fatal("un 429 debe reportarse como error")
	}
}

func TestGetVolume(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/volumes/abc123" {
			t.Errorf("path = %q, quería /volumes/abc123", r.URL.Path)
		}
		w.Write([]byte(volumenJSON))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 2*time.Second)
	v, err := c.GetVolume(context.Background(), "abc123")
	if err != nil {
		t.Fatal(err)
	}
	if v.ID != "abc123" || v.ISBN != "9788437604947" {
		t.Errorf("volumen mal mapeado: %+v", v)
	}
}
