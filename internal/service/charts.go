package service

import (
	"context"

	"pumpversuch/internal/charts"
	"pumpversuch/internal/models"
	"pumpversuch/internal/pumptest"
)

type ChartService struct {
	store *sessionStore
	opts  charts.Options
}

func NewChartService(store *sessionStore, opts charts.Options) *ChartService {
	return &ChartService{store: store, opts: opts}
}

// Render draws the requested diagram from the current table and logs a RENDERED event.
func (s *ChartService) Render(ctx context.Context, id string, req ChartRequest) ([]byte, error) {
	sess, err := s.store.load(ctx, id)
	if err != nil {
		return nil, err
	}

	in := chartInput(sess)
	var png []byte
	if req.Kind == charts.KindStack {
		png, err = charts.Stack(in, s.opts, req.WithHysteresis)
	} else {
		png, err = charts.Render(req.Kind, in, s.opts)
	}
	if err != nil {
		return nil, err
	}

	s.store.recordOrLog(ctx, sess.ID, change{
		Type:        models.EventRendered,
		Description: "Chart rendered: " + string(req.Kind),
		Metadata:    map[string]any{"kind": string(req.Kind), "hysteresis": req.WithHysteresis, "bytes": len(png)},
	})
	return png, nil
}

func chartInput(sess models.Session) charts.Input {
	return charts.Input{
		ProjectName: sess.ProjectName,
		Parameters:  sess.Parameters,
		Samples:     sess.Samples,
		Analysis:    pumptest.Analyze(sess.Samples, sess.Parameters),
	}
}
