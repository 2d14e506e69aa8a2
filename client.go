package jobpost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	v1 "github.com/emrgen/jobpost/apis/v1"
)

// DefaultAddr is the address of a locally running server.
const DefaultAddr = "http://localhost:8030"

// APIError is a failed response decoded from the server error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

// Client calls the job post http api.
type Client struct {
	addr  string
	token string
	http  *http.Client
}

// NewClient returns a client for the server at addr. The token is sent as a
// bearer token on every request and may be empty for public reads.
func NewClient(addr, token string) *Client {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Client{
		addr:  strings.TrimRight(addr, "/"),
		token: token,
		http:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) CreateJobPost(ctx context.Context, in *v1.JobPostInput) (*v1.CreateJobPostResponse, error) {
	var res v1.CreateJobPostResponse
	err := c.do(ctx, http.MethodPost, "/v1/posts", v1.CreateJobPostRequest{JobPostInput: *in}, &res)
	return &res, err
}

func (c *Client) GetJobPost(ctx context.Context, id uint64) (*v1.GetJobPostResponse, error) {
	var res v1.GetJobPostResponse
	err := c.do(ctx, http.MethodGet, postPath(id), nil, &res)
	return &res, err
}

func (c *Client) ListJobPosts(ctx context.Context, category *v1.Category) (*v1.ListJobPostsResponse, error) {
	path := "/v1/posts"
	if category != nil {
		path += "?" + url.Values{"category": {string(*category)}}.Encode()
	}

	var res v1.ListJobPostsResponse
	err := c.do(ctx, http.MethodGet, path, nil, &res)
	return &res, err
}

func (c *Client) UpdateJobPost(ctx context.Context, id uint64, version int64, in *v1.JobPostInput) (*v1.UpdateJobPostResponse, error) {
	var res v1.UpdateJobPostResponse
	err := c.do(ctx, http.MethodPut, postPath(id), v1.UpdateJobPostRequest{ID: id, Version: version, JobPostInput: *in}, &res)
	return &res, err
}

func (c *Client) DeleteJobPost(ctx context.Context, id uint64) (*v1.DeleteJobPostResponse, error) {
	var res v1.DeleteJobPostResponse
	err := c.do(ctx, http.MethodDelete, postPath(id), nil, &res)
	return &res, err
}

func (c *Client) RenderJobPost(ctx context.Context, id uint64, format v1.RenderFormat) (*v1.RenderJobPostResponse, error) {
	path := postPath(id) + "/render?" + url.Values{"format": {string(format)}}.Encode()

	var res v1.RenderJobPostResponse
	err := c.do(ctx, http.MethodGet, path, nil, &res)
	return &res, err
}

func (c *Client) ListJobPostRevisions(ctx context.Context, id uint64) (*v1.ListJobPostRevisionsResponse, error) {
	var res v1.ListJobPostRevisionsResponse
	err := c.do(ctx, http.MethodGet, postPath(id)+"/revisions", nil, &res)
	return &res, err
}

func (c *Client) RestoreJobPostRevision(ctx context.Context, id uint64, version int64) (*v1.UpdateJobPostResponse, error) {
	var res v1.UpdateJobPostResponse
	err := c.do(ctx, http.MethodPost, postPath(id)+"/revisions/"+strconv.FormatInt(version, 10)+"/restore", nil, &res)
	return &res, err
}

func (c *Client) CheckEligibility(ctx context.Context, req *v1.CheckEligibilityRequest) (*v1.CheckEligibilityResponse, error) {
	var res v1.CheckEligibilityResponse
	err := c.do(ctx, http.MethodPost, postPath(req.ID)+"/eligibility", req, &res)
	return &res, err
}

func postPath(id uint64) string {
	return "/v1/posts/" + strconv.FormatUint(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.addr+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode >= http.StatusBadRequest {
		return decodeError(res.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

func decodeError(status int, data []byte) error {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil || envelope.Error.Message == "" {
		return &APIError{Status: status, Message: strings.TrimSpace(string(data))}
	}
	return &APIError{Status: status, Code: envelope.Error.Code, Message: envelope.Error.Message}
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
