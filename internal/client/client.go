// Package client is a typed HTTP client for the records API, used by
// the eldercarectl operator tool.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/iliyamo/eldercare-records/internal/dto"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

type errorBody struct {
	Error string `json:"error"`
}

// Client talks to one API base URL.  Login stores the bearer token used
// by every later call.
type Client struct {
	http *resty.Client
	log  *zap.Logger
}

func New(baseURL string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	h := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json")
	return &Client{http: h, log: log}
}

func (c *Client) Login(ctx context.Context, email, password string) error {
	var out dto.LoginResponse
	if err := c.call(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return err
	}
	c.http.SetAuthToken(out.AccessToken)
	c.log.Debug("logged in", zap.Uint64("user_id", out.UserID))
	return nil
}

func (c *Client) Caregivers(ctx context.Context) ([]dto.Caregiver, error) {
	var out []dto.Caregiver
	err := c.call(ctx, http.MethodGet, "/caregivers", nil, &out)
	return out, err
}

func (c *Client) Elderly(ctx context.Context) ([]dto.Elderly, error) {
	var out []dto.Elderly
	err := c.call(ctx, http.MethodGet, "/elderly", nil, &out)
	return out, err
}

func (c *Client) Assignments(ctx context.Context) ([]dto.Assignment, error) {
	var out []dto.Assignment
	err := c.call(ctx, http.MethodGet, "/caregiver-assignments", nil, &out)
	return out, err
}

func (c *Client) UpdateSalary(ctx context.Context, caregiverID uint64, req dto.SalaryUpdate) (dto.Caregiver, error) {
	var out dto.Caregiver
	err := c.call(ctx, http.MethodPut, "/caregivers/"+strconv.FormatUint(caregiverID, 10)+"/update-salary", req, &out)
	return out, err
}

func (c *Client) Assign(ctx context.Context, caregiverID, elderlyID uint64) (dto.Assignment, error) {
	var out dto.Assignment
	req := dto.AssignmentCreate{CaregiverID: caregiverID, ElderlyID: elderlyID}
	err := c.call(ctx, http.MethodPost, "/caregiver-assignments", req, &out)
	return out, err
}

// Payslip downloads the rendered document; format is "pdf" or "xlsx".
func (c *Client) Payslip(ctx context.Context, caregiverID uint64, format string) ([]byte, error) {
	var eb errorBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&eb).
		Get("/caregivers/" + strconv.FormatUint(caregiverID, 10) + "/generate-" + format)
	if err != nil {
		return nil, fmt.Errorf("payslip request: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{Status: resp.StatusCode(), Message: eb.Error}
	}
	return resp.Body(), nil
}

func (c *Client) call(ctx context.Context, method, path string, body, result any) error {
	var eb errorBody
	r := c.http.R().SetContext(ctx).SetResult(result).SetError(&eb)
	if body != nil {
		r.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	resp, err := r.Execute(method, path)
	if err != nil {
		c.log.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return &APIError{Status: resp.StatusCode(), Message: eb.Error}
	}
	return nil
}
