// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"goldchart/overlay"
)

const requestRetryCount = 3

// Client talks to the goldchart backend over its json api.
// All methods are safe for concurrent use.
type Client struct {
	baseUrl     string
	apiClient   *http.Client
	rateLimiter *RateLimiter
}

func NewClient(baseUrl string, apiClient *http.Client, ratePerSecond int) *Client {
	if apiClient == nil {
		apiClient = http.DefaultClient
	}
	return &Client{
		baseUrl:     baseUrl,
		apiClient:   apiClient,
		rateLimiter: NewRateLimiter(ratePerSecond),
	}
}

func (c *Client) createRequest(ctx context.Context, method string, cmd string, query url.Values, body any) (*http.Request, error) {
	u := c.baseUrl + cmd
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) runRequest(ctx context.Context, req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error
	retry := true
	for i := 0; retry && i < requestRetryCount; i++ {
		err = c.rateLimiter.Wait(ctx)
		if err != nil {
			return nil, err
		}
		if i > 0 && req.GetBody != nil {
			req.Body, err = req.GetBody()
			if err != nil {
				return nil, err
			}
		}
		resp, err = c.apiClient.Do(req)
		if err == nil {
			c.rateLimiter.HandleResponseHeaders(resp)
		}
		retry = err == nil && resp.StatusCode == http.StatusTooManyRequests
		if retry {
			resp.Body.Close()
		}
	}
	return resp, err
}

// parseJsonResponse verifies status and content type before decoding
// the payload, so that proxy error pages fail loudly instead of
// producing zero values.
func parseJsonResponse(resp *http.Response, v any) error {
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend request failed: %s", resp.Status)
	}
	contentType := resp.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/json" {
		return fmt.Errorf("unexpected content type %q", contentType)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func (c *Client) query(ctx context.Context, method string, cmd string, query url.Values, body any, result any) error {
	req, err := c.createRequest(ctx, method, cmd, query, body)
	if err != nil {
		return err
	}
	resp, err := c.runRequest(ctx, req)
	if err != nil {
		return err
	}
	return parseJsonResponse(resp, result)
}

// QueryChart fetches the candle window for the given interval.
func (c *Client) QueryChart(ctx context.Context, bars int, interval string) (ChartData, error) {
	var resp chartResponse
	err := c.query(ctx, http.MethodPost, "/api/v1/chart", nil, chartRequest{Bars: bars, Interval: interval}, &resp)
	if err != nil {
		return ChartData{}, err
	}
	return resp.convert(), nil
}

// QueryRecentOrders fetches the latest raw tape entries.
func (c *Client) QueryRecentOrders(ctx context.Context, limit int) ([]Order, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	var resp ordersResponse
	err := c.query(ctx, http.MethodGet, "/api/v1/orders/recent", q, nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.convert(), nil
}

// QueryVolumeProfile computes the histogram server side.
func (c *Client) QueryVolumeProfile(ctx context.Context, req VolumeProfileRequest) (overlay.Profile, error) {
	var resp volumeProfileResponse
	err := c.query(ctx, http.MethodPost, "/api/v1/indicators/volume-profile", nil, req, &resp)
	if err != nil {
		return overlay.Profile{}, err
	}
	return resp.convert(), nil
}

// QueryMentor fetches the gann level and cycle annotations.
func (c *Client) QueryMentor(ctx context.Context) (MentorData, error) {
	var resp mentorResponse
	err := c.query(ctx, http.MethodPost, "/api/v1/mentor", nil, struct{}{}, &resp)
	if err != nil {
		return MentorData{}, err
	}
	return resp.convert(), nil
}

// QueryPrediction fetches the next 5min candle forecast.
func (c *Client) QueryPrediction(ctx context.Context) (Prediction, error) {
	var resp Prediction
	err := c.query(ctx, http.MethodPost, "/api/v1/candle/5min/predict", nil, struct{}{}, &resp)
	return resp, err
}

// QueryStatus polls backend health.
func (c *Client) QueryStatus(ctx context.Context) (Status, error) {
	var resp Status
	err := c.query(ctx, http.MethodGet, "/api/v1/status", nil, nil, &resp)
	return resp, err
}
