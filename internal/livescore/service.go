package livescore

import (
	"context"
	"fmt"
	"time"

	"github.com/Vodeneev/livescore/internal/pkg/feed"
	"github.com/Vodeneev/livescore/internal/pkg/models"
	"github.com/Vodeneev/livescore/internal/pkg/normalize"
	"github.com/Vodeneev/livescore/internal/pkg/performance"
)

// Service reads the feed and normalizes it. It is shared by the web server and the bot.
type Service struct {
	source  feed.Source
	tracker *performance.Tracker
}

func NewService(source feed.Source, tracker *performance.Tracker) *Service {
	return &Service{source: source, tracker: tracker}
}

// Matches returns every normalized match of the current snapshot, in feed order.
func (s *Service) Matches(ctx context.Context) ([]models.NormalizedMatch, error) {
	records, err := s.source.Matches(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	matches := normalize.NormalizeAll(records)
	s.tracker.RecordNormalize(time.Since(start), len(records), len(records)-len(matches))
	return matches, nil
}

// Details returns the details view of match id. feed.ErrMatchNotFound when the snapshot has no such match.
func (s *Service) Details(ctx context.Context, id int64) (models.MatchDetails, error) {
	records, err := s.source.Matches(ctx)
	if err != nil {
		return models.MatchDetails{}, err
	}
	rec, ok := feed.FindByID(records, id)
	if !ok {
		return models.MatchDetails{}, fmt.Errorf("%w: %d", feed.ErrMatchNotFound, id)
	}
	return normalize.Details(rec)
}
