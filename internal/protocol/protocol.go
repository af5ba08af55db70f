package protocol

import "encoding/json"

// JSONRPCVersion is stamped on every response envelope.
const JSONRPCVersion = "2.0"

// Reserved JSON-RPC 2.0 error codes. Clients match on the exact values.
const (
	CodeParseError     = -32700
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// FallbackID keys responses to requests whose id could not be read,
// including unparseable lines.
const FallbackID = 1

// Request is one line of input. It lives for exactly one dispatch.
type Request struct {
	JSONRPC string          `json:"jsonrpc,omitempty"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// CallParams is the params payload of a tools/call request.
type CallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// Response is one line of output. Exactly one is emitted per well-formed
// request; either Result or Error is set, never both.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// Error is the JSON-RPC error member.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// InitializeResult is the fixed capability descriptor returned by initialize.
type InitializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    Capabilities `json:"capabilities"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
}

// Capabilities advertises what the server supports. Only tools, for now.
type Capabilities struct {
	Tools struct{} `json:"tools"`
}

// ServerInfo identifies the server to the client. Reported verbatim.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// NewResult builds a success response echoing the request id.
func NewResult(id any, result any) *Response {
	return &Response{JSONRPC: JSONRPCVersion, ID: normalizeID(id), Result: result}
}

// NewError builds an error response echoing the request id.
func NewError(id any, code int, message string) *Response {
	return &Response{JSONRPC: JSONRPCVersion, ID: normalizeID(id), Error: &Error{Code: code, Message: message}}
}

func normalizeID(id any) any {
	if id == nil {
		return FallbackID
	}
	return id
}
