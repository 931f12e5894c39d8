// Package jobs defines the background task types and the Asynq worker
// bootstrap for report rendering.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskRenderReport is the task type for rendering a run's PDF report.
	TaskRenderReport = "report:render"
)

// RenderReportPayload identifies the processing run to render.
type RenderReportPayload struct {
	RunID string `json:"run_id"`
}

// NewRenderReportTask constructs an Asynq task for one run.
func NewRenderReportTask(payload RenderReportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRenderReport, data), nil
}
