package domain

import (
	"context"

	"github.com/louisbranch/glog-chargen/internal/platform/id"
	chargenservice "github.com/louisbranch/glog-chargen/internal/services/chargen/api/grpc/chargen"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// requestIDMetaKey names the correlation id in tool result metadata.
const requestIDMetaKey = "request_id"

// newOutgoingContext tags ctx with a fresh request id for the gRPC call.
func newOutgoingContext(ctx context.Context) (context.Context, string, error) {
	requestID, err := id.NewID()
	if err != nil {
		return nil, "", err
	}
	return chargenservice.WithRequestID(ctx, requestID), requestID, nil
}

// callToolResultWithRequestID builds a tool result carrying the request id.
// Structured output is filled in by the SDK.
func callToolResultWithRequestID(requestID string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Meta: map[string]any{requestIDMetaKey: requestID},
	}
}
