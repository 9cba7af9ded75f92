package index

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kamusis/sitesearch/internal/search"
)

func TestFetcher_PagesDisablesCaching(t *testing.T) {
	var gotCache string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCache = r.Header.Get("Cache-Control")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"url":"/a","title":"A"}]`))
	}))
	defer srv.Close()

	pages, err := NewFetcher(srv.URL + DefaultPath).Pages(context.Background())
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}
	if len(pages) != 1 || pages[0].URL != "/a" {
		t.Fatalf("unexpected pages: %+v", pages)
	}
	if gotCache != "no-store" {
		t.Fatalf("Cache-Control = %q, want no-store", gotCache)
	}
}

func TestFetcher_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.URL).Pages(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", se.StatusCode)
	}
}

func TestFetcher_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"url":`))
	}))
	defer srv.Close()

	if _, err := NewFetcher(srv.URL).Pages(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestFetcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if _, err := NewFetcher(srv.URL, WithTimeout(20*time.Millisecond)).Pages(context.Background()); err == nil {
		t.Fatalf("expected timeout error")
	}
}

type countingSource struct {
	calls   atomic.Int32
	release chan struct{}
}

func (c *countingSource) Pages(context.Context) ([]search.Page, error) {
	c.calls.Add(1)
	<-c.release
	return []search.Page{{URL: "/x"}}, nil
}

func TestShared_CoalescesConcurrentCalls(t *testing.T) {
	src := &countingSource{release: make(chan struct{})}
	shared := NewShared(src)

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pages, err := shared.Pages(context.Background())
			if err == nil && len(pages) != 1 {
				err = errors.New("unexpected pages")
			}
			errs <- err
		}()
	}
	// Let every caller join the in-flight call before releasing it.
	for src.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	close(src.release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}
	if n := src.calls.Load(); n != 1 {
		t.Fatalf("expected 1 retrieval, got %d", n)
	}
}
