package blockchain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// rpcStub serves a minimal Ethereum JSON-RPC surface for the two methods the
// client uses.
type rpcStub struct {
	receipt     atomic.Pointer[txReceipt]
	headBlock   atomic.Uint64
	receiptReqs atomic.Int64
}

func (s *rpcStub) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode rpc request: %v", err)
			return
		}

		var result interface{}
		switch req.Method {
		case "eth_getTransactionReceipt":
			s.receiptReqs.Add(1)
			if rec := s.receipt.Load(); rec != nil {
				result = rec
			}
		case "eth_blockNumber":
			result = hexUint(s.headBlock.Load())
		default:
			t.Errorf("unexpected rpc method %q", req.Method)
		}

		raw, _ := json.Marshal(result)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  json.RawMessage(raw),
		})
	}
}

func hexUint(v uint64) string {
	return "0x" + strconv.FormatUint(v, 16)
}

func newTestClient(url string) *Client {
	c := NewClient(url)
	c.PollInterval = 5 * time.Millisecond
	c.WaitTimeout = 500 * time.Millisecond
	return c
}

func TestWaitForReceipt_ConfirmedImmediately(t *testing.T) {
	stub := &rpcStub{}
	stub.receipt.Store(&txReceipt{Status: "0x1", BlockNumber: "0x64"}) // block 100
	stub.headBlock.Store(101)                                         // 2 confirmations

	srv := httptest.NewServer(stub.handler(t))
	defer srv.Close()

	c := newTestClient(srv.URL)
	require.NoError(t, c.WaitForReceipt(context.Background(), "0xabc"))
}

func TestWaitForReceipt_PollsUntilDeepEnough(t *testing.T) {
	stub := &rpcStub{}
	stub.receipt.Store(&txReceipt{Status: "0x1", BlockNumber: "0x64"})
	stub.headBlock.Store(100) // only 1 confirmation so far

	srv := httptest.NewServer(stub.handler(t))
	defer srv.Close()

	c := newTestClient(srv.URL)

	done := make(chan error, 1)
	go func() { done <- c.WaitForReceipt(context.Background(), "0xabc") }()

	time.Sleep(20 * time.Millisecond)
	stub.headBlock.Store(105)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("confirmation did not complete")
	}
	require.Greater(t, stub.receiptReqs.Load(), int64(1))
}

func TestWaitForReceipt_Reverted(t *testing.T) {
	stub := &rpcStub{}
	stub.receipt.Store(&txReceipt{Status: "0x0", BlockNumber: "0x64"})

	srv := httptest.NewServer(stub.handler(t))
	defer srv.Close()

	c := newTestClient(srv.URL)
	err := c.WaitForReceipt(context.Background(), "0xdead")
	require.ErrorIs(t, err, ErrTransactionReverted)
}

func TestWaitForReceipt_TimesOutWhenNeverMined(t *testing.T) {
	stub := &rpcStub{} // receipt stays nil

	srv := httptest.NewServer(stub.handler(t))
	defer srv.Close()

	c := newTestClient(srv.URL)
	c.WaitTimeout = 50 * time.Millisecond

	start := time.Now()
	err := c.WaitForReceipt(context.Background(), "0xmissing")
	require.ErrorIs(t, err, ErrConfirmationTimeout)
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestWaitForReceipt_RPCError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      1,
			"error":   map[string]interface{}{"code": -32000, "message": "header not found"},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	err := c.WaitForReceipt(context.Background(), "0xabc")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrTransactionReverted)
}

func TestWaitForReceipt_NotConfigured(t *testing.T) {
	var c *Client
	require.Error(t, c.WaitForReceipt(context.Background(), "0xabc"))
}
