package airdropClient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/merkle"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/types"
	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// ClientConfig holds the configuration for the proof API client
type ClientConfig struct {
	BaseURL    string
	Logger     *zap.Logger
	HTTPClient *http.Client // Optional: defaults to a client with a 10s timeout
}

// Client talks to the proof server
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// APIError is a non-2xx response from the proof server
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("proof server returned %d (code %d): %s", e.StatusCode, e.Code, e.Message)
}

// NewClient creates a new proof API client
func NewClient(config *ClientConfig) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.ParseRequestURI(config.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if config.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		logger:     config.Logger,
	}, nil
}

// GetRoot fetches the root the server is serving
func (c *Client) GetRoot(ctx context.Context) (*types.RootResponse, error) {
	resp := &types.RootResponse{}
	if err := c.do(ctx, http.MethodGet, "/root", nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetProof fetches the proof for address
func (c *Client) GetProof(ctx context.Context, address string) (*types.ProofResponse, error) {
	resp := &types.ProofResponse{}
	if err := c.do(ctx, http.MethodGet, "/proof/"+url.PathEscape(address), nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Verify asks the server to check a proof
func (c *Client) Verify(ctx context.Context, req *types.VerifyRequest) (*types.VerifyResponse, error) {
	resp := &types.VerifyResponse{}
	if err := c.do(ctx, http.MethodPost, "/verify", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetEligibility fetches the proof and claim status for address
func (c *Client) GetEligibility(ctx context.Context, address string) (*types.EligibilityResponse, error) {
	resp := &types.EligibilityResponse{}
	if err := c.do(ctx, http.MethodGet, "/eligibility/"+url.PathEscape(address), nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Reload asks the server to swap in its active snapshot
func (c *Client) Reload(ctx context.Context) (*types.RootResponse, error) {
	resp := &types.RootResponse{}
	if err := c.do(ctx, http.MethodPost, "/reload", nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// FetchClaimProof fetches the proof for address and checks it locally against
// the root the server reports. The result can be passed to the contract as is.
func (c *Client) FetchClaimProof(ctx context.Context, address string) ([][32]byte, [32]byte, error) {
	resp, err := c.GetProof(ctx, address)
	if err != nil {
		return nil, [32]byte{}, err
	}
	if !resp.Eligible {
		return nil, [32]byte{}, fmt.Errorf("address %s is not in the allowlist", resp.Address)
	}

	proof, err := merkle.ParseProof(resp.Proof)
	if err != nil {
		return nil, [32]byte{}, fmt.Errorf("server returned a malformed proof: %w", err)
	}
	root, err := merkle.ParseHash(resp.Root)
	if err != nil {
		return nil, [32]byte{}, fmt.Errorf("server returned a malformed root: %w", err)
	}
	addr, err := merkle.ParseAddress(resp.Address)
	if err != nil {
		return nil, [32]byte{}, fmt.Errorf("server returned a malformed address: %w", err)
	}
	if !merkle.VerifyAddressProof(addr, proof, root) {
		return nil, [32]byte{}, fmt.Errorf("proof from server does not verify against root %s", resp.Root)
	}
	return proof, root, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reqBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(reqBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Sugar().Debugw("Proof server request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to contact proof server: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}

		var errResp types.ErrorResponse
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			apiErr.Code = errResp.Code
			apiErr.Message = errResp.Error
		}
		c.logger.Sugar().Warnw("Proof server returned error",
			"path", path,
			"status_code", resp.StatusCode,
			"code", apiErr.Code,
		)
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
