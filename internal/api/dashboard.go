package api

import (
	"context"
	"net/http"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/models"
)

type dashboardResponse struct {
	Stats *models.DashboardStats `json:"stats"`
}

// FetchDashboard returns the server-computed statistics. The result is nil
// when the server sends no stats object.
func (c *Client) FetchDashboard(ctx context.Context) (*models.DashboardStats, error) {
	var res dashboardResponse
	if err := c.do(ctx, http.MethodGet, constants.EndpointDashboard, nil, &res); err != nil {
		return nil, err
	}
	return res.Stats, nil
}
