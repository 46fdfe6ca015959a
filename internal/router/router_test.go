package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/eldercare-records/internal/cache"
	"github.com/iliyamo/eldercare-records/internal/config"
	"github.com/iliyamo/eldercare-records/internal/dto"
	"github.com/iliyamo/eldercare-records/internal/handler"
	"github.com/iliyamo/eldercare-records/internal/repository"
	"github.com/iliyamo/eldercare-records/internal/service"
	"github.com/iliyamo/eldercare-records/internal/testsupport"
)

const testSecret = "router-test-secret"

type api struct {
	t *testing.T
	e *echo.Echo
}

func newAPI(t *testing.T, limit config.RateLimitConfig) api {
	t.Helper()
	db := testsupport.OpenDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	log := zap.NewNop()
	c := cache.New(cache.NewRedisBackend(rdb), time.Minute, "test", log)
	links := repository.NewAssignmentRepo(db)
	auth := service.NewAuthService(repository.NewUserRepo(db), repository.NewTokenRepo(db), service.AuthConfig{
		JWTSecret: testSecret, AccessTTLMin: 15, RefreshTTLDays: 7, BcryptCost: 4,
	}, log)

	e := echo.New()
	opts := Options{JWTSecret: testSecret, RateLimit: limit, Redis: rdb, Users: auth, Log: log}
	UseCommon(e, opts)
	RegisterRoutes(e, Handlers{
		Auth:        handler.NewAuthHandler(auth, log),
		Caregivers:  handler.NewCaregiverHandler(service.NewCaregiverService(repository.NewCaregiverRepo(db), links, c, nil, log), log),
		Elderly:     handler.NewElderlyHandler(service.NewElderlyService(repository.NewElderlyRepo(db), repository.NewTaskRepo(db), repository.NewMedicationRepo(db), links, c, log), log),
		Assignments: handler.NewAssignmentHandler(service.NewAssignmentService(links, c), log),
	}, opts)
	return api{t: t, e: e}
}

func (a api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// signup registers and logs in, returning an access token.
func (a api) signup(email string) string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/auth/register", "", echo.Map{"email": email, "password": "password123", "full_name": "Test"})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	rec = a.do(http.MethodPost, "/auth/login", "", echo.Map{"email": email, "password": "password123"})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	var out dto.LoginResponse
	decode(a.t, rec, &out)
	require.NotEmpty(a.t, out.AccessToken)
	return out.AccessToken
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decode(t, rec, &body)
	return body.Error
}

func id(v uint64) string { return strconv.FormatUint(v, 10) }

func noLimit() config.RateLimitConfig { return config.RateLimitConfig{} }

func TestHealthz(t *testing.T) {
	a := newAPI(t, noLimit())
	rec := a.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestAuth_Flow(t *testing.T) {
	a := newAPI(t, noLimit())
	token := a.signup("  Alice@Example.com ")

	rec := a.do(http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me dto.User
	decode(t, rec, &me)
	assert.Equal(t, "alice@example.com", me.Email)
	assert.True(t, me.IsActive)

	rec = a.do(http.MethodPost, "/auth/register", "", echo.Map{"email": "alice@example.com", "password": "password123"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User with this email already exists", errorOf(t, rec))

	rec = a.do(http.MethodPost, "/auth/login", "", echo.Map{"email": "alice@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Incorrect email or password", errorOf(t, rec))
}

func TestProtectedRoutes_RequireBearer(t *testing.T) {
	a := newAPI(t, noLimit())

	rec := a.do(http.MethodGet, "/caregivers", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No authorization header", errorOf(t, rec))

	rec = a.do(http.MethodGet, "/elderly", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Could not validate credentials", errorOf(t, rec))
}

func TestCaregiver_SalaryAndPayslip(t *testing.T) {
	a := newAPI(t, noLimit())
	token := a.signup("alice@example.com")

	rec := a.do(http.MethodPost, "/caregivers", token, echo.Map{
		"custom_id": 1, "name": "John Doe", "bank_name": "Bank A", "bank_account": "12345", "branch_number": "001",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var cg dto.Caregiver
	decode(t, rec, &cg)

	rec = a.do(http.MethodPost, "/caregivers", token, echo.Map{
		"custom_id": 1, "name": "Dup", "bank_name": "B", "bank_account": "1", "branch_number": "1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodPut, "/caregivers/"+id(cg.ID)+"/update-salary", token, echo.Map{
		"salary_price": 100, "salary_amount": 2,
		"saturday_price": 50, "saturday_amount": 4,
		"allowance_price": 30, "allowance_amount": 3,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &cg)
	assert.Equal(t, 490.0, cg.TotalBank)

	rec = a.do(http.MethodGet, "/caregivers/"+id(cg.ID)+"/generate-pdf", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "caregiver_1_report.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = a.do(http.MethodGet, "/caregivers/"+id(cg.ID)+"/generate-xlsx", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "caregiver_1_report.xlsx")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))

	rec = a.do(http.MethodDelete, "/caregivers/"+id(cg.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Caregiver `+id(cg.ID)+` deleted successfully"}`, rec.Body.String())

	rec = a.do(http.MethodGet, "/caregivers/"+id(cg.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestElderly_TasksMedicationsAndAssignments(t *testing.T) {
	a := newAPI(t, noLimit())
	token := a.signup("alice@example.com")

	var cg dto.Caregiver
	rec := a.do(http.MethodPost, "/caregivers", token, echo.Map{
		"custom_id": 7, "name": "Jane", "bank_name": "Bank", "bank_account": "9", "branch_number": "2",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &cg)

	var el dto.Elderly
	rec = a.do(http.MethodPost, "/elderly", token, echo.Map{"custom_id": 1, "name": "Grandma"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &el)
	base := "/elderly/" + id(el.ID)

	var task dto.Task
	rec = a.do(http.MethodPost, base+"/tasks", token, echo.Map{"description": "Morning walk"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &task)
	assert.Equal(t, "pending", task.Status)

	rec = a.do(http.MethodPut, base+"/tasks/"+id(task.ID)+"/status", token, echo.Map{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodPut, base+"/tasks/"+id(task.ID)+"/status", token, echo.Map{"status": "in progress"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &task)
	assert.Equal(t, "in progress", task.Status)

	rec = a.do(http.MethodPost, base+"/medications", token, echo.Map{"name": "Aspirin", "dosage": "100mg", "frequency": "daily"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var link dto.Assignment
	rec = a.do(http.MethodPost, "/caregiver-assignments", token, echo.Map{"caregiver_id": cg.ID, "elderly_id": el.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &link)

	rec = a.do(http.MethodPost, "/caregiver-assignments", token, echo.Map{"caregiver_id": cg.ID, "elderly_id": el.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodGet, base, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &el)
	assert.Len(t, el.Tasks, 1)
	assert.Len(t, el.Medications, 1)
	assert.Equal(t, []uint64{cg.ID}, el.CaregiverIDs)

	rec = a.do(http.MethodGet, "/caregivers/"+id(cg.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &cg)
	assert.Equal(t, []uint64{el.ID}, cg.ElderlyIDs)

	rec = a.do(http.MethodDelete, base, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// the cached caregiver view must drop the deleted elderly
	rec = a.do(http.MethodGet, "/caregivers/"+id(cg.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &cg)
	assert.Empty(t, cg.ElderlyIDs)

	rec = a.do(http.MethodGet, "/caregiver-assignments/"+id(link.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOwnerIsolation(t *testing.T) {
	a := newAPI(t, noLimit())
	alice := a.signup("alice@example.com")
	bob := a.signup("bob@example.com")

	var cg dto.Caregiver
	rec := a.do(http.MethodPost, "/caregivers", alice, echo.Map{
		"custom_id": 1, "name": "John", "bank_name": "B", "bank_account": "1", "branch_number": "1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &cg)

	rec = a.do(http.MethodGet, "/caregivers/"+id(cg.ID), bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = a.do(http.MethodDelete, "/caregivers/"+id(cg.ID), bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var list []dto.Caregiver
	rec = a.do(http.MethodGet, "/caregivers", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &list)
	assert.Empty(t, list)

	// same custom id is free for another owner
	rec = a.do(http.MethodPost, "/caregivers", bob, echo.Map{
		"custom_id": 1, "name": "John", "bank_name": "B", "bank_account": "1", "branch_number": "1",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInvalidPathID(t *testing.T) {
	a := newAPI(t, noLimit())
	token := a.signup("alice@example.com")

	rec := a.do(http.MethodGet, "/caregivers/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid id", errorOf(t, rec))
}

func TestLoginThrottled(t *testing.T) {
	a := newAPI(t, config.RateLimitConfig{Enabled: true, Max: 2, Window: time.Hour, Prefix: "rl"})

	body := echo.Map{"email": "nobody@example.com", "password": "password123"}
	for i := 0; i < 2; i++ {
		rec := a.do(http.MethodPost, "/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec := a.do(http.MethodPost, "/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}
