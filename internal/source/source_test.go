package source_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questcycle/backend/internal/domain/category"
	"github.com/questcycle/backend/internal/domain/questionbank"
	"github.com/questcycle/backend/internal/source"
)

const payload = `[
	{"id": 1, "cargo": "Técnico em Informática", "nivel": "Médio", "banca": "ITAME",
	 "enunciado": "Texto base", "alternativas": [{"id": 1, "texto": "a"}, {"id": 2, "texto": "b"}],
	 "resposta_correta": 1},
	{"id": 2, "cargo": "Técnico em Informática", "nivel": "Médio", "banca": "ITAME",
	 "enunciado": "Sobre o texto", "alternativas": [{"id": 1, "texto": "a"}, {"id": 2, "texto": "b"}],
	 "resposta_correta": 2}
]`

func TestHTTPSource_FetchQuestions(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, payload)
	}))
	defer srv.Close()

	src := source.NewHTTPSource(srv.URL+"/api/questoes", time.Second)
	questions, err := src.FetchQuestions(context.Background(), category.Predicates{
		Role:  "Técnico em Informática",
		Level: "Médio",
	})
	require.NoError(t, err)

	require.Len(t, questions, 2)
	assert.Equal(t, questionbank.ID("1"), questions[0].ID)
	assert.Equal(t, questionbank.ChoiceID("2"), questions[1].CorrectChoice)
	assert.Contains(t, gotQuery, "cargo=T%C3%A9cnico+em+Inform%C3%A1tica")
	assert.Contains(t, gotQuery, "nivel=M%C3%A9dio")
	assert.NotContains(t, gotQuery, "banca")
}

func TestHTTPSource_TransportErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"not": "an array"`)
		}},
		{"invalid record", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `[{"id": 1, "alternativas": [{"id": 1}], "resposta_correta": 9}]`)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			questions, err := source.NewHTTPSource(srv.URL, time.Second).FetchQuestions(context.Background(), category.Predicates{})

			var te *source.TransportError
			assert.True(t, errors.As(err, &te), "expected TransportError, got %v", err)
			assert.Nil(t, questions, "no partial pool")
		})
	}
}

func TestHTTPSource_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := source.NewHTTPSource(url, time.Second).FetchQuestions(context.Background(), category.Predicates{})

	var te *source.TransportError
	assert.ErrorAs(t, err, &te)
}

func TestHTTPSource_RespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := source.NewHTTPSource(srv.URL, 5*time.Second).FetchQuestions(ctx, category.Predicates{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	questions, err := source.NewFileSource(path).FetchQuestions(context.Background(), category.Predicates{})
	require.NoError(t, err)
	assert.Len(t, questions, 2)

	_, err = source.NewFileSource(filepath.Join(t.TempDir(), "missing.json")).FetchQuestions(context.Background(), category.Predicates{})
	var te *source.TransportError
	assert.ErrorAs(t, err, &te)
}

func TestWithMedia(t *testing.T) {
	existing := &questionbank.Media{Image: "kept.png"}
	base := source.StaticSource{
		{ID: "226"},
		{ID: "230", Media: existing},
		{ID: "1"},
	}

	src := source.WithMedia(base, map[questionbank.ID]questionbank.Media{
		"226": {Image: "figura1.png"},
		"230": {Image: "figura2.png"},
	})

	questions, err := src.FetchQuestions(context.Background(), category.Predicates{})
	require.NoError(t, err)

	require.NotNil(t, questions[0].Media)
	assert.Equal(t, "figura1.png", questions[0].Media.Image)
	assert.Equal(t, "kept.png", questions[1].Media.Image)
	assert.Nil(t, questions[2].Media)
}

func TestWithMedia_EmptyOverlayReturnsSource(t *testing.T) {
	base := source.StaticSource{{ID: "1"}}
	assert.Equal(t, source.Source(base), source.WithMedia(base, nil))
}

type countingPinger struct {
	calls atomic.Int32
}

func (p *countingPinger) Ping(ctx context.Context) error {
	p.calls.Add(1)
	return errors.New("asleep")
}

func TestKeepAlive_PingsUntilCancelled(t *testing.T) {
	p := &countingPinger{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		source.KeepAlive(ctx, p, 5*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
		close(done)
	}()

	assert.Eventually(t, func() bool { return p.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("keep-alive did not stop after cancel")
	}
}
