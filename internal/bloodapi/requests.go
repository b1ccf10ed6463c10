package bloodapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"bloodnet/pkg/types"
)

// RequestList is the request listing plus the informational message the
// service occasionally attaches to it.
type RequestList struct {
	Requests []*types.BloodRequest
	Message  string
}

// Requests fetches every open request. The service answers with either a
// bare array or an object wrapping the array with a message, so both shapes
// are tolerated.
func (c *Client) Requests(ctx context.Context) (*RequestList, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/requests", nil, nil, &raw); err != nil {
		return nil, err
	}

	list := new(RequestList)
	if err := json.Unmarshal(raw, &list.Requests); err == nil {
		return list, nil
	}

	var wrapped struct {
		Requests []*types.BloodRequest `json:"requests"`
		Message  string                `json:"message"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode request list: %w", err)
	}

	list.Requests = wrapped.Requests
	list.Message = wrapped.Message
	return list, nil
}

func (c *Client) Request(ctx context.Context, id int64) (*types.BloodRequest, error) {
	request := new(types.BloodRequest)
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/requests/%d", id), nil, nil, request); err != nil {
		return nil, err
	}

	return request, nil
}

// CreateRequestResult carries the created request and how many matching
// donors the service notified by email. The count is computed server-side;
// this app only surfaces it.
type CreateRequestResult struct {
	Request    types.BloodRequest
	DonorCount int
}

func (c *Client) CreateRequest(ctx context.Context, request *types.BloodRequest) (*CreateRequestResult, error) {
	var payload struct {
		types.BloodRequest
		DonorCount int `json:"donorCount"`
	}
	if err := c.do(ctx, http.MethodPost, "/requests", nil, request, &payload); err != nil {
		return nil, err
	}

	return &CreateRequestResult{Request: payload.BloodRequest, DonorCount: payload.DonorCount}, nil
}

func (c *Client) UpdateRequest(ctx context.Context, id int64, request *types.BloodRequest) (*types.BloodRequest, error) {
	updated := new(types.BloodRequest)
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/requests/%d", id), nil, request, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

func (c *Client) DeleteRequest(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/requests/%d", id), nil, nil, nil)
}

// AcceptRequest records a donor's acceptance and returns the service's
// confirmation text. Driven by the emailed acceptance link; requires no
// login.
func (c *Client) AcceptRequest(ctx context.Context, id int64, donorEmail string) (string, error) {
	query := url.Values{}
	query.Set("donorEmail", donorEmail)

	return c.doText(ctx, http.MethodPost, fmt.Sprintf("/requests/%d/accept", id), query, nil)
}

func (c *Client) Summary(ctx context.Context) (*types.Summary, error) {
	summary := new(types.Summary)
	if err := c.do(ctx, http.MethodGet, "/requests/summary", nil, nil, summary); err != nil {
		return nil, err
	}

	return summary, nil
}
