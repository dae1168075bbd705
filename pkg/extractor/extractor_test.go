package extractor

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"

	"github.com/hellenic-development/palette-extractor/pkg/coolors"
	"github.com/hellenic-development/palette-extractor/pkg/palette"
)

var canonical = regexp.MustCompile(`^#[0-9A-F]{6}$`)

func assertCanonical(t *testing.T, l palette.List) {
	t.Helper()
	for i, p := range l {
		for j, c := range p {
			if !canonical.MatchString(string(c)) {
				t.Errorf("palette %d color %d = %q is not #RRGGBB", i, j, c)
			}
		}
	}
}

func TestParseItems(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want palette.List
	}{
		{
			name: "list of color lists",
			raw:  `[["#264653","2a9d8f","#e9c46a"],["#606C38","#283618"]]`,
			want: palette.List{{"#264653", "#2A9D8F", "#E9C46A"}, {"#606C38", "#283618"}},
		},
		{
			name: "list of objects",
			raw:  `[{"colors":["#003049","#D62828"]},{"name":"no colors"}]`,
			want: palette.List{{"#003049", "#D62828"}},
		},
		{
			name: "object with joined colors string",
			raw:  `[{"colors":"003049-d62828-f77f00"}]`,
			want: palette.List{{"#003049", "#D62828", "#F77F00"}},
		},
		{
			name: "list of hex runs",
			raw:  `["264653-2a9d8f-e9c46a", "not a palette"]`,
			want: palette.List{{"#264653", "#2A9D8F", "#E9C46A"}},
		},
		{
			name: "container object",
			raw:  `{"results":["0d1b2a-1b263b"],"palettes":[["#FFBE0B","#FB5607"]]}`,
			want: palette.List{{"#FFBE0B", "#FB5607"}, {"#0D1B2A", "#1B263B"}},
		},
		{
			name: "malformed member drops palette",
			raw:  `[["#264653","#GGGGGG"],["#000000","#FFFFFF"]]`,
			want: palette.List{{"#000000", "#FFFFFF"}},
		},
		{name: "scalar", raw: `42`},
		{name: "broken json", raw: `[[`},
		{name: "empty", raw: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseItems([]byte(tt.raw))
			if len(got) != len(tt.want) {
				t.Fatalf("ParseItems() returned %d palettes %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if !got[i].Equal(tt.want[i]) {
					t.Errorf("ParseItems()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
			assertCanonical(t, got)
		})
	}
}

func TestAPIStrategy(t *testing.T) {
	var (
		mu   sync.Mutex
		hits []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits = append(hits, r.URL.Path)
		mu.Unlock()
		switch r.URL.Path {
		case "/api/palettes/trending":
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		case "/api/explore/trending":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[["264653","2a9d8f","e9c46a","f4a261","e76f51"]]`))
		}
	}))
	defer srv.Close()

	s := NewAPIStrategy(coolors.NewClient(coolors.Settings{BaseURL: srv.URL}))
	got, err := s.Extract(context.Background(), 10)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(got) != 1 || got[0][0] != "#264653" {
		t.Errorf("Extract() = %v", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(hits) != 2 || hits[0] != "/api/palettes/trending" {
		t.Errorf("endpoints hit = %v, want both in order", hits)
	}
	assertCanonical(t, got)
}

func TestAPIStrategyDeclines(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "gone", http.StatusNotFound)
			},
		},
		{
			name: "html instead of json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>login</html>`))
			},
		},
		{
			name: "empty list",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[]`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			s := NewAPIStrategy(coolors.NewClient(coolors.Settings{BaseURL: srv.URL}))
			got, err := s.Extract(context.Background(), 10)
			if !errors.Is(err, ErrNoPalettes) {
				t.Errorf("Extract() error = %v, want ErrNoPalettes", err)
			}
			if len(got) != 0 {
				t.Errorf("Extract() = %v, want nothing", got)
			}
		})
	}
}

func TestParsePageData(t *testing.T) {
	blob := base64.StdEncoding.EncodeToString([]byte(
		`{"palettes":[{"colors":["#264653","#2A9D8F","#E9C46A"]}],"items":["606c38-283618-fefae0"]}`))

	html := `<html><head><script>var page_data_encoded = "` + blob + `";</script></head><body>
		<a href="/palette/264653-2a9d8f-e9c46a">repeat of blob palette</a>
		<a href="/palette/003049-d62828-f77f00-fcbf49-eae2b7">new</a>
		<a href="https://coolors.co/palette/003049-d62828-f77f00-fcbf49-eae2b7">repeat link</a>
		<a href="/palette/abc">too short</a>
	</body></html>`

	got := ParsePageData(html)
	want := palette.List{
		{"#264653", "#2A9D8F", "#E9C46A"},
		{"#606C38", "#283618", "#FEFAE0"},
		{"#003049", "#D62828", "#F77F00", "#FCBF49", "#EAE2B7"},
	}

	if len(got) != len(want) {
		t.Fatalf("ParsePageData() returned %d palettes %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("ParsePageData()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	assertCanonical(t, got)
}

func TestParsePageDataBrokenBlob(t *testing.T) {
	html := `<script>var page_data_encoded = "%%%";</script><a href="/palette/0d1b2a-1b263b-415a77">x</a>`

	got := ParsePageData(html)
	if len(got) != 1 || !got[0].Equal(palette.Palette{"#0D1B2A", "#1B263B", "#415A77"}) {
		t.Errorf("ParsePageData() = %v, want the link palette only", got)
	}
}

func TestPageDataStrategy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/palettes/trending" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<a href="/palette/ffbe0b-fb5607-ff006e-8338ec-3a86ff">p</a>`))
	}))
	defer srv.Close()

	s := NewPageDataStrategy(coolors.NewClient(coolors.Settings{BaseURL: srv.URL}))
	got, err := s.Extract(context.Background(), 10)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(got) != 1 || len(got[0]) != 5 {
		t.Errorf("Extract() = %v", got)
	}
}

func TestPageDataStrategyDeclines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>JavaScript required</body></html>`))
	}))
	defer srv.Close()

	s := NewPageDataStrategy(coolors.NewClient(coolors.Settings{BaseURL: srv.URL}))
	if _, err := s.Extract(context.Background(), 10); !errors.Is(err, ErrNoPalettes) {
		t.Errorf("Extract() error = %v, want ErrNoPalettes", err)
	}
}
