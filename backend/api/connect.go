package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"

	"connectrpc.com/connect"

	"github.com/tenntenn/superast-cpp/backend/lower"
	"github.com/tenntenn/superast-cpp/backend/model"
	"github.com/tenntenn/superast-cpp/backend/parser"
)

// LowerProcedure is the Connect RPC path of SuperastService.Lower.
const LowerProcedure = "/superast.v1.SuperastService/Lower"

// SuperastServiceHandler implements the Connect RPC SuperastService
type SuperastServiceHandler struct {
	logger *log.Logger
}

// NewSuperastServiceHandler creates a new SuperastServiceHandler. When
// logger is not nil, constructs dropped while lowering are reported to it.
func NewSuperastServiceHandler(logger *log.Logger) *SuperastServiceHandler {
	return &SuperastServiceHandler{logger: logger}
}

func (h *SuperastServiceHandler) options() []lower.Option {
	if h.logger == nil {
		return nil
	}
	return []lower.Option{lower.WithLogger(h.logger)}
}

// Lower handles the Lower RPC method
func (h *SuperastServiceHandler) Lower(
	ctx context.Context,
	req *connect.Request[model.LowerRequest],
) (*connect.Response[model.LowerResponse], error) {
	response, err := Lower(ctx, req.Msg, h.options()...)
	if err != nil {
		return nil, connect.NewError(connectCode(err), err)
	}
	return connect.NewResponse(response), nil
}

func connectCode(err error) connect.Code {
	switch {
	case errors.Is(err, ErrEmptySource), errors.Is(err, parser.ErrMalformed):
		return connect.CodeInvalidArgument
	case errors.Is(err, ErrFormat):
		return connect.CodeUnimplemented
	case errors.Is(err, ErrSchemaVersion):
		return connect.CodeFailedPrecondition
	case errors.Is(err, lower.ErrUnsupported):
		return connect.CodeAborted
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	}
	return connect.CodeInternal
}

// JSONCodec implements the JSON codec for SuperastService messages, which
// are plain Go structs rather than protobuf messages.
type JSONCodec struct{}

func (c *JSONCodec) Name() string {
	return "json"
}

func (c *JSONCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := model.Encode(&buf, v, true); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (c *JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
