package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acortes/biblioteca/internal/app/models"
	"github.com/acortes/biblioteca/internal/middleware"
	"github.com/acortes/biblioteca/internal/pkg/apperrors"
)

// stubLoanService implements services.LoanService with function fields
type stubLoanService struct {
	requestLoan func(ctx context.Context, userID, materialID uuid.UUID) (*models.Loan, error)
	renewLoan   func(ctx context.Context, userID, loanID uuid.UUID) (*models.Loan, error)
	returnLoan  func(ctx context.Context, loanID, userID uuid.UUID, isStaff bool) (*models.Loan, error)
	listByUser  func(ctx context.Context, userID uuid.UUID) ([]*models.Loan, error)
}

func (s *stubLoanService) RequestLoan(ctx context.Context, userID, materialID uuid.UUID) (*models.Loan, error) {
	return s.requestLoan(ctx, userID, materialID)
}

func (s *stubLoanService) RenewLoan(ctx context.Context, userID, loanID uuid.UUID) (*models.Loan, error) {
	return s.renewLoan(ctx, userID, loanID)
}

func (s *stubLoanService) ReturnLoan(ctx context.Context, loanID, userID uuid.UUID, isStaff bool) (*models.Loan, error) {
	return s.returnLoan(ctx, loanID, userID, isStaff)
}

func (s *stubLoanService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Loan, error) {
	return s.listByUser(ctx, userID)
}

// setIdentity injects an authenticated caller the way JWTAuth would
func setIdentity(userID uuid.UUID, role models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextRole, role)
		c.Next()
	}
}

func newLoanRouter(svc *stubLoanService, userID uuid.UUID, role models.RoleType) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewLoanController(svc)

	group := router.Group("/api/v1", setIdentity(userID, role))
	group.POST("/loans", controller.RequestLoan)
	group.GET("/loans", controller.ListLoans)
	group.POST("/loans/:id/renew", controller.RenewLoan)
	group.POST("/loans/:id/return", controller.ReturnLoan)

	return router
}

func TestRequestLoanEndpoint(t *testing.T) {
	userID := uuid.New()
	materialID := uuid.New()
	svc := &stubLoanService{
		requestLoan: func(ctx context.Context, gotUser, gotMaterial uuid.UUID) (*models.Loan, error) {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, materialID, gotMaterial)
			return &models.Loan{
				ID:         uuid.New(),
				MaterialID: gotMaterial,
				UserID:     gotUser,
				DueDate:    time.Now().AddDate(0, 0, 15),
				Status:     models.LoanActive,
			}, nil
		},
	}
	router := newLoanRouter(svc, userID, models.RoleUser)

	body := `{"materialId":"` + materialID.String() + `"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/loans", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data models.Loan `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.LoanActive, resp.Data.Status)
}

func TestRequestLoanEndpointNoCopies(t *testing.T) {
	svc := &stubLoanService{
		requestLoan: func(ctx context.Context, userID, materialID uuid.UUID) (*models.Loan, error) {
			return nil, apperrors.ErrNoCopiesAvailable
		},
	}
	router := newLoanRouter(svc, uuid.New(), models.RoleUser)

	body := `{"materialId":"` + uuid.NewString() + `"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/loans", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "LOAN_002")
}

func TestRequestLoanEndpointBadBody(t *testing.T) {
	router := newLoanRouter(&stubLoanService{}, uuid.New(), models.RoleUser)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/loans", strings.NewReader(`{"materialId":"not-a-uuid"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRenewLoanEndpoint(t *testing.T) {
	userID := uuid.New()
	loanID := uuid.New()
	dueDate := time.Now().AddDate(0, 0, 30).Truncate(time.Second)
	svc := &stubLoanService{
		renewLoan: func(ctx context.Context, gotUser, gotLoan uuid.UUID) (*models.Loan, error) {
			assert.Equal(t, loanID, gotLoan)
			return &models.Loan{ID: gotLoan, UserID: gotUser, DueDate: dueDate, Renewals: 1, Status: models.LoanActive}, nil
		},
	}
	router := newLoanRouter(svc, userID, models.RoleUser)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/loans/"+loanID.String()+"/renew", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Renewals int `json:"renewals"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.Renewals)
}

func TestRenewLoanEndpointLimitReached(t *testing.T) {
	svc := &stubLoanService{
		renewLoan: func(ctx context.Context, userID, loanID uuid.UUID) (*models.Loan, error) {
			return nil, apperrors.ErrRenewalLimitReached
		},
	}
	router := newLoanRouter(svc, uuid.New(), models.RoleUser)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/loans/"+uuid.NewString()+"/renew", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "LOAN_005")
}

func TestReturnLoanEndpointPassesStaffFlag(t *testing.T) {
	loanID := uuid.New()
	now := time.Now()
	svc := &stubLoanService{
		returnLoan: func(ctx context.Context, gotLoan, userID uuid.UUID, isStaff bool) (*models.Loan, error) {
			assert.True(t, isStaff)
			return &models.Loan{ID: gotLoan, Status: models.LoanReturned, ReturnDate: &now}, nil
		},
	}
	router := newLoanRouter(svc, uuid.New(), models.RoleLibrarian)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/loans/"+loanID.String()+"/return", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "returned")
}

func TestListLoansEndpoint(t *testing.T) {
	userID := uuid.New()
	svc := &stubLoanService{
		listByUser: func(ctx context.Context, gotUser uuid.UUID) ([]*models.Loan, error) {
			assert.Equal(t, userID, gotUser)
			return []*models.Loan{{ID: uuid.New(), UserID: gotUser, Status: models.LoanActive}}, nil
		},
	}
	router := newLoanRouter(svc, userID, models.RoleUser)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/loans", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Loan `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
}
