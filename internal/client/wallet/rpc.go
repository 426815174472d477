// Package wallet talks to an Ethereum-compatible wallet node over JSON-RPC:
// account access, chain selection, and the nullifier registry contract used
// during registration.
package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/voicevote/voicevote/internal/common"
)

// codeChainNotAdded is the wallet error code for a chain the wallet does not
// know yet; the caller is expected to add it and retry.
const codeChainNotAdded = 4902

// RPCError is a JSON-RPC error object returned by the node or wallet.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// IsChainNotAdded reports whether err is the wallet's "unrecognized chain"
// rejection.
func IsChainNotAdded(err error) bool {
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		return false
	}
	return rpcErr.Code == codeChainNotAdded
}

// RPCClient is a minimal JSON-RPC 2.0 client over HTTP.
type RPCClient struct {
	url   string
	httpc *http.Client
	seq   atomic.Int64
}

func NewRPCClient(url string, httpc *http.Client) *RPCClient {
	if httpc == nil {
		httpc = &http.Client{}
	}
	return &RPCClient{url: url, httpc: httpc}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// Call invokes method with params and decodes the result into out (out may be
// nil when the result is irrelevant).
func (c *RPCClient) Call(ctx context.Context, method string, params any, out any) error {
	if params == nil {
		params = []any{}
	}
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.seq.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected rpc status %d", resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("failed to decode rpc response: %w", err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}

	if out != nil {
		if err := json.Unmarshal(rpcResp.Result, out); err != nil {
			return fmt.Errorf("failed to decode rpc result: %w", err)
		}
	}
	return nil
}
