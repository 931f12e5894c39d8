package statementshttp

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

var renderGroup singleflight.Group

// renderOnce collapses concurrent render requests for the same run.
func (h *Handler) renderOnce(ctx context.Context, id uuid.UUID) (string, error) {
	resultChan := renderGroup.DoChan(id.String(), func() (interface{}, error) {
		return h.renderJob.Render(ctx, id)
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}
