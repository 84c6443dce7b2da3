package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/example/cashew-corner/internal/model"
)

const reportsPath = "/reports"

func (c *Client) Reports() *ReportClient { return &ReportClient{c: c} }

type ReportClient struct {
	c *Client
}

func (r *ReportClient) List(ctx context.Context) ([]model.Report, error) {
	return get[[]model.Report](ctx, r.c, reportsPath, nil)
}

func (r *ReportClient) Get(ctx context.Context, id int64) (model.Report, error) {
	return get[model.Report](ctx, r.c, idPath(reportsPath, id), nil)
}

func (r *ReportClient) Download(ctx context.Context, id int64) (model.Report, error) {
	return get[model.Report](ctx, r.c, idPath(reportsPath, id, "download"), nil)
}

func (r *ReportClient) Generate(ctx context.Context, req model.GenerateReportRequest) (model.Report, error) {
	return call[model.Report](ctx, r.c, http.MethodPost, reportsPath, nil, req)
}

func (r *ReportClient) Delete(ctx context.Context, id int64) error {
	return r.c.delete(ctx, idPath(reportsPath, id))
}

// The analytics endpoints take an optional year; zero leaves it to the backend.

func (r *ReportClient) SellingPriceFluctuation(ctx context.Context, productID int64, year int) ([]model.SellingPriceFluctuation, error) {
	q := yearQuery(year)
	q.Set("productId", strconv.FormatInt(productID, 10))
	return get[[]model.SellingPriceFluctuation](ctx, r.c, reportsPath+"/selling-price-fluctuation", q)
}

func (r *ReportClient) TransactionSummary(ctx context.Context, year int) ([]model.TransactionSummary, error) {
	return get[[]model.TransactionSummary](ctx, r.c, reportsPath+"/transaction-summary", yearQuery(year))
}

func (r *ReportClient) CategoryFinancialSummary(ctx context.Context, year int) ([]model.CategoryFinancialSummary, error) {
	return get[[]model.CategoryFinancialSummary](ctx, r.c, reportsPath+"/category-financial-summary", yearQuery(year))
}

func (r *ReportClient) CategoryVolumeReport(ctx context.Context, typ model.VolumeReportType, year int) ([]model.CategoryVolumeReport, error) {
	q := yearQuery(year)
	q.Set("type", string(typ))
	return get[[]model.CategoryVolumeReport](ctx, r.c, reportsPath+"/category-volume-report", q)
}

func yearQuery(year int) url.Values {
	q := url.Values{}
	if year > 0 {
		q.Set("year", strconv.Itoa(year))
	}
	return q
}
