// Package blockchain talks to an Ethereum JSON-RPC endpoint to confirm
// escrow payment transactions.
package blockchain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

var (
	// ErrTransactionReverted is returned when the receipt reports status 0x0.
	ErrTransactionReverted = errors.New("transaction reverted")
	// ErrConfirmationTimeout is returned when the transaction was not
	// confirmed within the wait deadline.
	ErrConfirmationTimeout = errors.New("transaction confirmation timed out")
)

// Client polls an Ethereum node for transaction receipts. The node is an
// external collaborator; transport-level flakiness is absorbed by
// retryablehttp, confirmation depth by the polling loop.
type Client struct {
	rpcURL     string
	httpClient *retryablehttp.Client

	// PollInterval is the delay between receipt checks.
	PollInterval time.Duration
	// Confirmations is the minimum confirmation depth before a payment
	// counts as settled.
	Confirmations uint64
	// WaitTimeout bounds a single WaitForReceipt call.
	WaitTimeout time.Duration
}

// NewClient creates a confirmation client for the given JSON-RPC endpoint.
func NewClient(rpcURL string) *Client {
	hc := retryablehttp.NewClient()
	hc.RetryMax = 3
	hc.HTTPClient.Timeout = 10 * time.Second
	hc.Logger = nil

	return &Client{
		rpcURL:        rpcURL,
		httpClient:    hc,
		PollInterval:  3 * time.Second,
		Confirmations: 2,
		WaitTimeout:   2 * time.Minute,
	}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int           `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type txReceipt struct {
	Status      string `json:"status"`
	BlockNumber string `json:"blockNumber"`
}

// WaitForReceipt blocks until txHash is confirmed to the configured depth.
// A reverted transaction fails immediately; an unknown transaction keeps
// polling until the deadline.
func (c *Client) WaitForReceipt(ctx context.Context, txHash string) error {
	if c == nil || c.rpcURL == "" {
		return fmt.Errorf("blockchain client not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.WaitTimeout)
	defer cancel()

	ticker := time.NewTicker(c.PollInterval)
	defer ticker.Stop()

	for {
		confirmed, err := c.checkOnce(ctx, txHash)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("%w: %s", ErrConfirmationTimeout, txHash)
			}
			return err
		}
		if confirmed {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %s", ErrConfirmationTimeout, txHash)
		case <-ticker.C:
		}
	}
}

// checkOnce fetches the receipt and reports whether it has reached the
// required confirmation depth.
func (c *Client) checkOnce(ctx context.Context, txHash string) (bool, error) {
	var receipt *txReceipt
	if err := c.call(ctx, "eth_getTransactionReceipt", []interface{}{txHash}, &receipt); err != nil {
		return false, err
	}
	if receipt == nil {
		// Not yet mined (or unknown) — keep polling.
		return false, nil
	}

	if receipt.Status != "0x1" {
		return false, fmt.Errorf("%w: %s", ErrTransactionReverted, txHash)
	}

	minedAt, err := parseHexUint(receipt.BlockNumber)
	if err != nil {
		return false, fmt.Errorf("parse receipt block number: %w", err)
	}

	var headHex string
	if err := c.call(ctx, "eth_blockNumber", []interface{}{}, &headHex); err != nil {
		return false, err
	}
	head, err := parseHexUint(headHex)
	if err != nil {
		return false, fmt.Errorf("parse head block number: %w", err)
	}

	return head >= minedAt && head-minedAt+1 >= c.Confirmations, nil
}

func (c *Client) call(ctx context.Context, method string, params []interface{}, result interface{}) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	})
	if err != nil {
		return fmt.Errorf("marshal rpc request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d", method, resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("%s: decode response: %w", method, err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("%s: rpc error %d: %s", method, rpcResp.Error.Code, rpcResp.Error.Message)
	}

	if err := json.Unmarshal(rpcResp.Result, result); err != nil {
		return fmt.Errorf("%s: unmarshal result: %w", method, err)
	}
	return nil
}

func parseHexUint(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 64)
}
