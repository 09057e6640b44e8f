package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneykeeper/internal/config"
	"moneykeeper/internal/logger"
	"moneykeeper/internal/utils"
	"moneykeeper/models"
)

// newTestAdapter creates an httpServerAdapter pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}

	a, err := NewHTTPServerAdapter(adapterCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

// signedTestToken issues a real JWT for user 42 so that the adapter can
// extract the user ID from the subject claim.
func signedTestToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateJWTToken("moneykeeper", 42, time.Hour, "test-sign-key")
	require.NoError(t, err)
	return token.SignedString
}

func TestNewHTTPServerAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: "   "}, logger.Nop())
	require.Error(t, err)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "bare host gets http scheme", in: "localhost:8080", want: "http://localhost:8080"},
		{name: "trailing slash trimmed", in: "http://localhost:8080/", want: "http://localhost:8080"},
		{name: "https preserved", in: "https://money.example.com", want: "https://money.example.com"},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── Register / Login ────────────────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	user := models.User{Username: "alice", Email: "alice@example.com", Password: "secret1"}
	jwt := signedTestToken(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/register", r.URL.Path)

		w.Header().Set("Authorization", "Bearer "+jwt)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Register(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, user.Username, got.Username)
	assert.Equal(t, jwt, a.Token())
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("username or email already exists"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.User{Username: "alice"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegister_InternalServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal server error"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.User{Username: "alice"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternalServerError)
}

func TestLogin_Success(t *testing.T) {
	jwt := signedTestToken(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		w.Header().Set("Authorization", "Bearer "+jwt)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Login(context.Background(), models.User{Username: "alice", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, jwt, got.SignedString)
	assert.Equal(t, jwt, a.Token())
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("invalid username/password"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.User{Username: "alice"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── Record CRUD ─────────────────────────────────────────────────────────────

func TestCreateRecord_Success(t *testing.T) {
	want := models.Record{ID: 7, Title: "Groceries", Amount: 54.10, Category: "Food", Date: "2024-03-01", UserID: 42}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/expenses", r.URL.Path)
		assert.Equal(t, "Bearer sometoken", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("sometoken")

	got, err := a.CreateRecord(context.Background(), KindExpense, models.Record{Title: "Groceries", Amount: 54.10, Category: "Food", Date: "2024-03-01"})

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCreateRecord_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("title must not be empty"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.CreateRecord(context.Background(), KindExpense, models.Record{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestGetRecord_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/income/99", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("no record was found"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.GetRecord(context.Background(), KindIncome, 99)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListRecords_FilterEncodedAsQuery(t *testing.T) {
	want := []models.Record{{ID: 1, Title: "Bus ticket", Amount: 2.50, Category: "Transport", Date: "2024-02-10"}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/expenses", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "Transport", q.Get("category"))
		assert.Equal(t, "2", q.Get("month"))
		assert.Equal(t, "2024", q.Get("year"))
		assert.Equal(t, "bus", q.Get("search"))
		assert.Empty(t, q.Get("start_date"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("sometoken")

	got, err := a.ListRecords(context.Background(), KindExpense, models.RecordFilter{Category: "Transport", Month: 2, Year: 2024, Search: "bus"})

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestUpdateRecord_Success(t *testing.T) {
	title := "Dinner"
	want := models.Record{ID: 3, Title: title, Amount: 30, Category: "Food", Date: "2024-01-05"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/expenses/3", r.URL.Path)

		var update models.RecordUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&update))
		require.NotNil(t, update.Title)
		assert.Equal(t, title, *update.Title)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("sometoken")

	got, err := a.UpdateRecord(context.Background(), KindExpense, 3, models.RecordUpdate{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDeleteRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/income/5", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("sometoken")

	require.NoError(t, a.DeleteRecord(context.Background(), KindIncome, 5))
}

func TestDeleteRecord_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.DeleteRecord(context.Background(), KindIncome, 5)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ── Aggregates and export ───────────────────────────────────────────────────

func TestRecordStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/expenses/stats", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("month"))
		assert.Equal(t, "2024", r.URL.Query().Get("year"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total": 30}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("sometoken")

	got, err := a.RecordStats(context.Background(), KindExpense, 2, 2024)

	require.NoError(t, err)
	assert.Equal(t, float64(30), got)
}

func TestRecordsByCategory(t *testing.T) {
	want := []models.CategoryAmount{{Category: "Food", Amount: 150}, {Category: "Transport", Amount: 30}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/expenses/by-category", r.URL.Path)
		assert.Equal(t, "2024", r.URL.Query().Get("year"))
		assert.False(t, r.URL.Query().Has("month"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("sometoken")

	got, err := a.RecordsByCategory(context.Background(), KindExpense, 0, 2024)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRecordsMonthly(t *testing.T) {
	want := []models.MonthlyAmount{{Month: 1, Amount: 150}, {Month: 2, Amount: 30}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/income/monthly", r.URL.Path)
		assert.Equal(t, "2024", r.URL.Query().Get("year"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("sometoken")

	got, err := a.RecordsMonthly(context.Background(), KindIncome, 2024)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExportCSV(t *testing.T) {
	const doc = "id,title,amount,category,date,description,payment_method\n1,Groceries,54.1,Food,2024-03-01,,card\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/expenses/export/csv", r.URL.Path)
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(doc))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("sometoken")

	got, err := a.ExportCSV(context.Background(), KindExpense)

	require.NoError(t, err)
	assert.Equal(t, doc, string(got))
}

// ── Dashboard ───────────────────────────────────────────────────────────────

func TestDashboardStats(t *testing.T) {
	want := models.DashboardStats{
		TotalBalance:   820,
		TotalIncome:    1000,
		TotalExpense:   180,
		MonthlyExpense: 30,
		RecentTransactions: []models.Transaction{
			{ID: 1, Title: "Salary", Amount: 1000, Type: "income", Date: "2024-02-01", Category: "Salary"},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dashboard/stats", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("sometoken")

	got, err := a.DashboardStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDashboardStats_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.DashboardStats(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestExpenseTrend(t *testing.T) {
	want := []models.MonthlyAmount{{Month: 1, Amount: 150}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dashboard/expense-trend", r.URL.Path)
		assert.Equal(t, "2024", r.URL.Query().Get("year"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("sometoken")

	got, err := a.ExpenseTrend(context.Background(), 2024)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestIncomeVsExpense_DefaultYearOmitsParam(t *testing.T) {
	want := []models.MonthlyComparison{{Month: 1, Income: 1000, Expense: 150}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dashboard/income-vs-expense", r.URL.Path)
		assert.False(t, r.URL.Query().Has("year"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("sometoken")

	got, err := a.IncomeVsExpense(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version/", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("1.2.3\n"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.2.3", got)
}
