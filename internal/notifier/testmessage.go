package notifier

import (
	"context"

	"github.com/amishk599/jobdigest/internal/model"
	"github.com/amishk599/jobdigest/internal/render"
)

// SendTestMessage sends a one-row digest to verify the integration works.
func SendTestMessage(ctx context.Context, n model.Notifier) (model.Delivery, error) {
	testJob := model.Job{
		Company:  "jobdigest",
		Title:    "Test Data Analyst (Integration Verified)",
		Location: "Remote",
		URL:      "https://remotive.com/remote-jobs/data",
		Keywords: "test",
		Skills:   "test",
		Source:   "test",
	}
	html, err := render.Body([]model.Job{testJob}, "Source: jobdigest notify test")
	if err != nil {
		return model.Delivery{}, err
	}
	return n.Notify(ctx, html)
}
