package search

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRAWGClientSearchGames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/games" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("key") != "test-key" {
			t.Errorf("key = %q", q.Get("key"))
		}
		if q.Get("search") != "hades" {
			t.Errorf("search = %q", q.Get("search"))
		}
		if q.Get("page_size") != "20" {
			t.Errorf("page_size = %q", q.Get("page_size"))
		}

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"results":[
			{"id":10,"name":"Hades","background_image":"https://img.test/hades.jpg",
			 "metacritic":93,"genres":[{"name":"Action"},{"name":"Indie"}],
			 "platforms":[{"platform":{"name":"PC"}}],"playtime":22,
			 "released":"2020-09-17","rating":4.5}
		]}`)
	}))
	defer srv.Close()

	c := NewRAWGClient(srv.URL, "test-key", quietLogger())
	results, err := c.SearchGames(context.Background(), "hades")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	r := results[0]
	if r.ID != 10 || r.Name != "Hades" || r.Metacritic != 93 {
		t.Fatalf("result mismatch: %+v", r)
	}
	if len(r.Genres) != 2 || r.Genres[0].Name != "Action" {
		t.Fatalf("genres mismatch: %+v", r.Genres)
	}
	if len(r.Platforms) != 1 || r.Platforms[0].Platform.Name != "PC" {
		t.Fatalf("platforms mismatch: %+v", r.Platforms)
	}
}

func TestRAWGClientSearchEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"results":null}`)
	}))
	defer srv.Close()

	c := NewRAWGClient(srv.URL, "k", quietLogger())
	results, err := c.SearchGames(context.Background(), "nothing")
	if err != nil {
		t.Fatal(err)
	}
	if results == nil || len(results) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", results)
	}
}

func TestRAWGClientGetGameDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/games/42" {
			t.Errorf("path = %q", r.URL.Path)
		}
		io.WriteString(w, `{"id":42,"name":"Hollow Knight","playtime":27}`)
	}))
	defer srv.Close()

	c := NewRAWGClient(srv.URL, "k", quietLogger())
	game, err := c.GetGameDetails(context.Background(), 42)
	if err != nil {
		t.Fatal(err)
	}
	if game.Name != "Hollow Knight" || game.Playtime != 27 {
		t.Fatalf("result mismatch: %+v", game)
	}
}

func TestRAWGClientNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewRAWGClient(srv.URL, "k", quietLogger())
	_, err := c.GetGameDetails(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRAWGClientUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewRAWGClient(srv.URL, "k", quietLogger())
	_, err := c.SearchGames(context.Background(), "hades")
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("want ProviderError, got %v", err)
	}
}
