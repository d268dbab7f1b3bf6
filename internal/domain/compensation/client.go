package compensation

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client is the accounting service's public contract as this service
// consumes it.
type Client interface {
	// GetSalary asks for the salary computation given a whole-year tenure.
	GetSalary(ctx context.Context, employeeID int64, years int) (json.RawMessage, error)

	// SetBaseSalary upserts a stored base salary override and returns the
	// acknowledgement body.
	SetBaseSalary(ctx context.Context, employeeID int64, baseSalary float64) (json.RawMessage, error)
}

// HTTPClient talks to the accounting service over its REST surface with a
// bounded per-request timeout and no automatic retries; retry policy
// belongs to callers.
type HTTPClient struct {
	rc *resty.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &HTTPClient{rc: client}
}

func (c *HTTPClient) GetSalary(ctx context.Context, employeeID int64, years int) (json.RawMessage, error) {
	if years < 0 {
		return nil, ErrInvalidYears
	}

	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParam("years", strconv.Itoa(years)).
		Get(fmt.Sprintf("/salary/%d", employeeID))
	if err != nil {
		return nil, &AuthorityUnreachableError{Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &AuthorityError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}
	return json.RawMessage(resp.Body()), nil
}

func (c *HTTPClient) SetBaseSalary(ctx context.Context, employeeID int64, baseSalary float64) (json.RawMessage, error) {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParam("base_salary", strconv.FormatFloat(baseSalary, 'f', -1, 64)).
		Post(fmt.Sprintf("/salary/%d/set", employeeID))
	if err != nil {
		return nil, &AuthorityUnreachableError{Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &AuthorityError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}
	return json.RawMessage(resp.Body()), nil
}
