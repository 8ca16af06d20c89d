package source

import (
	"context"

	"github.com/questcycle/backend/internal/domain/category"
	"github.com/questcycle/backend/internal/domain/questionbank"
)

// mediaSource decorates another source with presentation metadata.
type mediaSource struct {
	next  Source
	media map[questionbank.ID]questionbank.Media
}

// WithMedia attaches media to matching questions returned by next. An empty
// map returns next unchanged. Media already present on a question wins.
func WithMedia(next Source, media map[questionbank.ID]questionbank.Media) Source {
	if len(media) == 0 {
		return next
	}
	return &mediaSource{next: next, media: media}
}

func (s *mediaSource) FetchQuestions(ctx context.Context, p category.Predicates) ([]questionbank.Question, error) {
	questions, err := s.next.FetchQuestions(ctx, p)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		if questions[i].Media != nil {
			continue
		}
		if m, ok := s.media[questions[i].ID]; ok {
			m := m
			questions[i].Media = &m
		}
	}
	return questions, nil
}

// Ping forwards to the wrapped source when it supports pinging.
func (s *mediaSource) Ping(ctx context.Context) error {
	if p, ok := s.next.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
