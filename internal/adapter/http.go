package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"

	"moneykeeper/internal/config"
	"moneykeeper/internal/logger"
	"moneykeeper/internal/utils"
	"moneykeeper/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the user credentials to
// POST /api/auth/register. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken. Returns an error if
// the request fails, the server returns a non-2xx status, or the token cannot
// be parsed.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("register parse bearer token: %w", err)
	}
	userID, err := parseUserIDFromJWT(token)
	if err != nil {
		return models.User{}, fmt.Errorf("register parse user id: %w", err)
	}

	h.SetToken(token)
	return models.User{UserID: userID, Username: user.Username, Email: user.Email}, nil
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/login. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken. Returns the token
// with the user ID extracted from its claims.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/login")
	if err != nil {
		return models.Token{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("login parse bearer token: %w", err)
	}
	userID, err := parseUserIDFromJWT(token)
	if err != nil {
		return models.Token{}, fmt.Errorf("login parse user id: %w", err)
	}

	h.SetToken(token)
	return models.Token{SignedString: token, UserID: userID}, nil
}

// CreateRecord implements [ServerAdapter]. It POSTs the record to the
// collection root and returns the stored row. Requires a valid bearer token.
func (h *httpServerAdapter) CreateRecord(ctx context.Context, kind RecordKind, record models.Record) (models.Record, error) {
	var created models.Record

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(record).
		SetResult(&created).
		Post(kind.basePath())
	if err != nil {
		return models.Record{}, fmt.Errorf("create record request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Record{}, err
	}

	return created, nil
}

// GetRecord implements [ServerAdapter]. It GETs a single record by ID.
// Returns [ErrNotFound] (wrapped) on HTTP 404. Requires a valid bearer token.
func (h *httpServerAdapter) GetRecord(ctx context.Context, kind RecordKind, id int64) (models.Record, error) {
	var record models.Record

	resp, err := h.authedRequest(ctx).
		SetResult(&record).
		Get(kind.basePath() + "/" + strconv.FormatInt(id, 10))
	if err != nil {
		return models.Record{}, fmt.Errorf("get record request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Record{}, err
	}

	return record, nil
}

// ListRecords implements [ServerAdapter]. It GETs the collection root with
// the filter encoded as query parameters. Zero-valued filter fields are
// omitted. Requires a valid bearer token.
func (h *httpServerAdapter) ListRecords(ctx context.Context, kind RecordKind, filter models.RecordFilter) ([]models.Record, error) {
	req := h.authedRequest(ctx)
	if filter.Category != "" {
		req.SetQueryParam("category", filter.Category)
	}
	if filter.Month != 0 {
		req.SetQueryParam("month", strconv.Itoa(filter.Month))
	}
	if filter.Year != 0 {
		req.SetQueryParam("year", strconv.Itoa(filter.Year))
	}
	if filter.StartDate != "" {
		req.SetQueryParam("start_date", filter.StartDate)
	}
	if filter.EndDate != "" {
		req.SetQueryParam("end_date", filter.EndDate)
	}
	if filter.Search != "" {
		req.SetQueryParam("search", filter.Search)
	}

	resp, err := req.Get(kind.basePath())
	if err != nil {
		return nil, fmt.Errorf("list records request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var records []models.Record
	if err = json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("decode list records response: %w", err)
	}

	return records, nil
}

// UpdateRecord implements [ServerAdapter]. It PUTs the partial update to the
// record's URL and returns the updated row. Returns [ErrNotFound] (wrapped)
// on HTTP 404. Requires a valid bearer token.
func (h *httpServerAdapter) UpdateRecord(ctx context.Context, kind RecordKind, id int64, update models.RecordUpdate) (models.Record, error) {
	var updated models.Record

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		SetResult(&updated).
		Put(kind.basePath() + "/" + strconv.FormatInt(id, 10))
	if err != nil {
		return models.Record{}, fmt.Errorf("update record request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Record{}, err
	}

	return updated, nil
}

// DeleteRecord implements [ServerAdapter]. It DELETEs the record's URL.
// Returns [ErrNotFound] (wrapped) on HTTP 404. Requires a valid bearer token.
func (h *httpServerAdapter) DeleteRecord(ctx context.Context, kind RecordKind, id int64) error {
	resp, err := h.authedRequest(ctx).
		Delete(kind.basePath() + "/" + strconv.FormatInt(id, 10))
	if err != nil {
		return fmt.Errorf("delete record request: %w", err)
	}

	return mapHTTPError(resp)
}

// RecordStats implements [ServerAdapter]. It GETs the collection's stats
// endpoint and returns the decoded total. Requires a valid bearer token.
func (h *httpServerAdapter) RecordStats(ctx context.Context, kind RecordKind, month, year int) (float64, error) {
	var stats struct {
		Total float64 `json:"total"`
	}

	req := h.authedRequest(ctx).SetResult(&stats)
	if month != 0 {
		req.SetQueryParam("month", strconv.Itoa(month))
	}
	if year != 0 {
		req.SetQueryParam("year", strconv.Itoa(year))
	}

	resp, err := req.Get(kind.basePath() + "/stats")
	if err != nil {
		return 0, fmt.Errorf("record stats request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	return stats.Total, nil
}

// RecordsByCategory implements [ServerAdapter]. It GETs the collection's
// by-category endpoint. Requires a valid bearer token.
func (h *httpServerAdapter) RecordsByCategory(ctx context.Context, kind RecordKind, month, year int) ([]models.CategoryAmount, error) {
	req := h.authedRequest(ctx)
	if month != 0 {
		req.SetQueryParam("month", strconv.Itoa(month))
	}
	if year != 0 {
		req.SetQueryParam("year", strconv.Itoa(year))
	}

	resp, err := req.Get(kind.basePath() + "/by-category")
	if err != nil {
		return nil, fmt.Errorf("records by category request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var totals []models.CategoryAmount
	if err = json.Unmarshal(resp.Body(), &totals); err != nil {
		return nil, fmt.Errorf("decode by category response: %w", err)
	}

	return totals, nil
}

// RecordsMonthly implements [ServerAdapter]. It GETs the collection's monthly
// endpoint for the given year. Requires a valid bearer token.
func (h *httpServerAdapter) RecordsMonthly(ctx context.Context, kind RecordKind, year int) ([]models.MonthlyAmount, error) {
	req := h.authedRequest(ctx)
	if year != 0 {
		req.SetQueryParam("year", strconv.Itoa(year))
	}

	resp, err := req.Get(kind.basePath() + "/monthly")
	if err != nil {
		return nil, fmt.Errorf("records monthly request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var totals []models.MonthlyAmount
	if err = json.Unmarshal(resp.Body(), &totals); err != nil {
		return nil, fmt.Errorf("decode monthly response: %w", err)
	}

	return totals, nil
}

// ExportCSV implements [ServerAdapter]. It GETs the collection's CSV export
// endpoint and returns the raw document. Requires a valid bearer token.
func (h *httpServerAdapter) ExportCSV(ctx context.Context, kind RecordKind) ([]byte, error) {
	resp, err := h.authedRequest(ctx).Get(kind.basePath() + "/export/csv")
	if err != nil {
		return nil, fmt.Errorf("export csv request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

// DashboardStats implements [ServerAdapter]. It GETs /api/dashboard/stats and
// returns the decoded summary. Requires a valid bearer token.
func (h *httpServerAdapter) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats

	resp, err := h.authedRequest(ctx).
		SetResult(&stats).
		Get("/api/dashboard/stats")
	if err != nil {
		return models.DashboardStats{}, fmt.Errorf("dashboard stats request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DashboardStats{}, err
	}

	return stats, nil
}

// ExpenseTrend implements [ServerAdapter]. It GETs
// /api/dashboard/expense-trend for the given year. Requires a valid bearer
// token.
func (h *httpServerAdapter) ExpenseTrend(ctx context.Context, year int) ([]models.MonthlyAmount, error) {
	req := h.authedRequest(ctx)
	if year != 0 {
		req.SetQueryParam("year", strconv.Itoa(year))
	}

	resp, err := req.Get("/api/dashboard/expense-trend")
	if err != nil {
		return nil, fmt.Errorf("expense trend request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var trend []models.MonthlyAmount
	if err = json.Unmarshal(resp.Body(), &trend); err != nil {
		return nil, fmt.Errorf("decode expense trend response: %w", err)
	}

	return trend, nil
}

// IncomeVsExpense implements [ServerAdapter]. It GETs
// /api/dashboard/income-vs-expense for the given year. Requires a valid
// bearer token.
func (h *httpServerAdapter) IncomeVsExpense(ctx context.Context, year int) ([]models.MonthlyComparison, error) {
	req := h.authedRequest(ctx)
	if year != 0 {
		req.SetQueryParam("year", strconv.Itoa(year))
	}

	resp, err := req.Get("/api/dashboard/income-vs-expense")
	if err != nil {
		return nil, fmt.Errorf("income vs expense request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var comparison []models.MonthlyComparison
	if err = json.Unmarshal(resp.Body(), &comparison); err != nil {
		return nil, fmt.Errorf("decode income vs expense response: %w", err)
	}

	return comparison, nil
}

// Version implements [ServerAdapter]. It GETs /api/version/ and returns the
// plain-text version string.
func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(string(resp.Body())), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func (k RecordKind) basePath() string {
	return "/api/" + string(k)
}

func parseUserIDFromJWT(tokenString string) (int64, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}
