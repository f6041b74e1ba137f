package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ordersports "github.com/inkwell-labs/bookstore-api/internal/domains/orders/ports"
	reportingports "github.com/inkwell-labs/bookstore-api/internal/domains/reporting/ports"
)

// AdminAPI exposes the dashboard statistics endpoint.
type AdminAPI struct {
	reporting reportingports.Service
}

// NewAdminAPI creates an AdminAPI backed by the reporting service.
func NewAdminAPI(reporting reportingports.Service) AdminAPI {
	return AdminAPI{reporting: reporting}
}

type statsResponse struct {
	TotalOrders   int64              `json:"totalOrders"`
	TotalSales    float64            `json:"totalSales"`
	TrendingBooks int64              `json:"trendingBooks"`
	TotalBooks    int64              `json:"totalBooks"`
	MonthlySales  []monthlyBucketDTO `json:"monthlySales"`
}

type monthlyBucketDTO struct {
	Month       string  `json:"_id"`
	TotalSales  float64 `json:"totalSales"`
	TotalOrders int64   `json:"totalOrders"`
}

// Get /api/admin
// Aggregate storefront statistics for the dashboard
func (api *AdminAPI) GetStats(c *gin.Context) {
	snapshot, err := api.reporting.ComputeStats(c.Request.Context())
	if err != nil {
		respondStatsError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStatsResponse(snapshot))
}

func toStatsResponse(snapshot *reportingports.StatsSnapshot) statsResponse {
	return statsResponse{
		TotalOrders:   snapshot.TotalOrders,
		TotalSales:    snapshot.TotalSales,
		TrendingBooks: snapshot.TrendingBooks,
		TotalBooks:    snapshot.TotalBooks,
		MonthlySales:  toMonthlyDTOs(snapshot.MonthlySales),
	}
}

func toMonthlyDTOs(buckets []ordersports.MonthlyBucket) []monthlyBucketDTO {
	out := make([]monthlyBucketDTO, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, monthlyBucketDTO{
			Month:       b.Month,
			TotalSales:  b.TotalSales,
			TotalOrders: b.TotalOrders,
		})
	}
	return out
}
