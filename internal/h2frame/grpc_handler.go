package h2frame

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/domsolutions/tcp-h2-describe/internal/hexdump"
)

// ErrLengthMismatch reports a gRPC DATA frame whose 4-octet length prefix
// does not match the remaining payload length.
var ErrLengthMismatch = errors.New("length-mismatch: declared gRPC message length does not match payload")

const grpcPrefixSize = 5 // 1-octet compressed flag + 4-octet length

// GRPCSchema is one candidate protobuf message type the gRPC DATA
// handler tries, in order, when rendering a message body. A caller
// wiring in its own generated types registers them through
// RegisterGRPCSchema instead of this module depending on them directly.
type GRPCSchema struct {
	Name string
	New  func() proto.Message
}

// DefaultGRPCSchemas is the candidate list the gRPC DATA handler starts
// with: the well-known wrapper and empty messages shipped by
// google.golang.org/protobuf itself, since this module does not generate
// or vendor any application-specific message stubs (an explicitly
// out-of-scope collaborator).
func DefaultGRPCSchemas() []GRPCSchema {
	return []GRPCSchema{
		{"google.protobuf.StringValue", func() proto.Message { return &wrapperspb.StringValue{} }},
		{"google.protobuf.BytesValue", func() proto.Message { return &wrapperspb.BytesValue{} }},
		{"google.protobuf.Empty", func() proto.Message { return &emptypb.Empty{} }},
	}
}

// grpcSchemas is the process-wide, extensible candidate list. It has no
// lock of its own and is not covered by Registry.Lock.
var grpcSchemas = DefaultGRPCSchemas()

// RegisterGRPCSchema appends schema to the candidate list tried by
// NewGRPCDataHandler. Mirrors the extension shape of
// Registry.RegisterPayloadHandler but scoped to message schemas, since
// the gRPC DATA handler itself is installed once via
// Registry.RegisterPayloadHandler(Data, NewGRPCDataHandler()). The append
// is unsynchronised and succeeds whether or not a Registry is locked.
func RegisterGRPCSchema(schema GRPCSchema) {
	grpcSchemas = append(grpcSchemas, schema)
}

// NewGRPCDataHandler builds a DATA payload handler that decodes the
// gRPC-over-HTTP/2 length-prefixed message framing: a 1-octet compressed
// flag, a 4-octet big-endian message length, and the message bytes.
func NewGRPCDataHandler() Handler {
	return func(payload []byte, flags uint8) (string, error) {
		if flags&uint8(FlagPadded) != 0 {
			return "", newParseError(ErrNotImplemented, Data, "padded DATA framing is not implemented")
		}
		if len(payload) == 0 {
			return "", nil
		}
		if len(payload) < grpcPrefixSize {
			return "", newParseError(ErrShortPayload, Data, "gRPC frame shorter than the 5-octet prefix")
		}

		compressed := payload[0]
		switch compressed {
		case 0x00:
			// uncompressed, proceed
		case 0x01:
			return "", newParseError(ErrNotImplemented, Data, "compressed gRPC messages are not implemented")
		default:
			return "", newParseError(ErrInvalidLength, Data, fmt.Sprintf("invalid gRPC compressed flag 0x%02x", compressed))
		}

		declared := uint32(payload[1])<<24 | uint32(payload[2])<<16 | uint32(payload[3])<<8 | uint32(payload[4])
		if int(declared) != len(payload)-grpcPrefixSize {
			return "", newParseError(ErrLengthMismatch, Data, fmt.Sprintf("declared %d, have %d", declared, len(payload)-grpcPrefixSize))
		}

		out := fmt.Sprintf("gRPC Compressed Flag = %d (0x%02x)\n", compressed, compressed)
		out += fmt.Sprintf("gRPC Message Length = %d", declared)
		if declared == 0 {
			return out, nil
		}

		msgBytes := payload[grpcPrefixSize:]
		schemaName, pretty := renderGRPCMessage(msgBytes)

		out += fmt.Sprintf("\nMessage Schema = %s\n", schemaName)
		out += "Message =\n" + hexdump.Indent(pretty, "   ") + "\n"
		out += "Hexdump (Message) =\n"
		out += hexdump.Indent(hexdump.Multi(msgBytes, hexdump.DefaultRowSize), "   ")
		return out, nil
	}
}

// renderGRPCMessage tries each registered candidate schema in turn,
// returning the first one that unmarshals cleanly. If none match, the
// message is rendered as a quoted byte literal under the "RAW" schema.
func renderGRPCMessage(b []byte) (schemaName, pretty string) {
	for _, schema := range grpcSchemas {
		msg := schema.New()
		if err := proto.Unmarshal(b, msg); err != nil {
			continue
		}
		return schema.Name, prototext.Format(msg)
	}
	return "RAW", QuoteBytes(b)
}
