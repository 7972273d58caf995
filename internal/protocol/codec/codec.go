package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/palemoky/secret-duel/internal/protocol"
)

const (
	fieldType    = "type"
	fieldPayload = "payload"
)

// ErrMissingType 消息缺少 type 字段
var ErrMissingType = errors.New("message type is required")

// NewMessage 创建一个新消息，payload 以 JSON 编码
// 注意: 使用完毕后可调用 PutMessage 归还对象到池
func NewMessage(msgType protocol.MessageType, payload any) (*protocol.Message, error) {
	msg := GetMessage()
	msg.Type = msgType

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			PutMessage(msg)
			return nil, fmt.Errorf("编码 payload 失败: %w", err)
		}
		msg.Payload = data
	}
	return msg, nil
}

// MustNewMessage 创建消息，失败时 panic
func MustNewMessage(msgType protocol.MessageType, payload any) *protocol.Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// Encode 将消息编码为 JSON 文本帧
func Encode(m *protocol.Message) ([]byte, error) {
	buf := GetBuffer()
	defer PutBuffer(buf)

	if err := json.NewEncoder(buf).Encode(m); err != nil {
		return nil, err
	}
	// Encoder 会追加换行符
	return bytes.Clone(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// Decode 从 JSON 文本帧解码消息
// 注意: 使用完毕后应调用 PutMessage 归还对象到池
func Decode(data []byte) (*protocol.Message, error) {
	msg := GetMessage()
	if err := json.Unmarshal(data, msg); err != nil {
		PutMessage(msg)
		return nil, err
	}
	if msg.Type == "" {
		PutMessage(msg)
		return nil, ErrMissingType
	}
	return msg, nil
}

// EncodeBinary 将消息编码为 Protobuf 二进制帧（google.protobuf.Struct {type, payload}）
func EncodeBinary(m *protocol.Message) ([]byte, error) {
	var payload any
	if len(m.Payload) > 0 {
		if err := json.Unmarshal(m.Payload, &payload); err != nil {
			return nil, fmt.Errorf("解析 payload 失败: %w", err)
		}
	}

	s, err := structpb.NewStruct(map[string]any{
		fieldType:    string(m.Type),
		fieldPayload: payload,
	})
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

// DecodeBinary 从 Protobuf 二进制帧解码消息
// 注意: 使用完毕后应调用 PutMessage 归还对象到池
func DecodeBinary(data []byte) (*protocol.Message, error) {
	s := GetStruct()
	defer PutStruct(s)

	if err := proto.Unmarshal(data, s); err != nil {
		return nil, err
	}

	msgType := s.GetFields()[fieldType].GetStringValue()
	if msgType == "" {
		return nil, ErrMissingType
	}

	msg := GetMessage()
	msg.Type = protocol.MessageType(msgType)

	if v, ok := s.GetFields()[fieldPayload]; ok {
		if _, isNull := v.GetKind().(*structpb.Value_NullValue); !isNull {
			raw, err := v.MarshalJSON()
			if err != nil {
				PutMessage(msg)
				return nil, err
			}
			msg.Payload = raw
		}
	}
	return msg, nil
}

// ParsePayload 解析消息的 Payload 到指定类型
func ParsePayload[T any](msg *protocol.Message) (*T, error) {
	var payload T
	if len(msg.Payload) == 0 {
		return &payload, nil
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// NewErrorMessage 创建错误消息
func NewErrorMessage(code int) *protocol.Message {
	return NewTypedError(protocol.MsgError, code, protocol.ErrorMessages[code])
}

// NewErrorMessageWithText 创建带自定义文本的错误消息
func NewErrorMessageWithText(code int, text string) *protocol.Message {
	return NewTypedError(protocol.MsgError, code, text)
}

// NewTypedError 以指定消息类型创建错误回复（join_error / illegal_move 等）
func NewTypedError(msgType protocol.MessageType, code int, text string) *protocol.Message {
	return MustNewMessage(msgType, protocol.ErrorPayload{
		Code:    code,
		Message: text,
	})
}
