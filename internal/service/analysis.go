package service

import (
	"context"

	"pumpversuch/internal/models"
	"pumpversuch/internal/pumptest"
)

type AnalysisService struct {
	store *sessionStore
}

func NewAnalysisService(store *sessionStore) *AnalysisService {
	return &AnalysisService{store: store}
}

// Analyze recomputes the derived series from the table as it is now.
func (s *AnalysisService) Analyze(ctx context.Context, id string) (models.Analysis, error) {
	sess, err := s.store.load(ctx, id)
	if err != nil {
		return models.Analysis{}, err
	}
	return pumptest.Analyze(sess.Samples, sess.Parameters), nil
}
