package response

import (
	"encoding/json"
	"net/http"
	"time"

	"edu-admin/internal/pkg/xerrors"
)

// EmptyData 在成功响应中表示“无数据”
type EmptyData struct{}

// ResponseResult 是一个通用的API响应结构体
type ResponseResult[T any] struct {
	Code      int    `json:"code"`               // 业务响应码
	Message   string `json:"message"`            // 响应消息
	Data      *T     `json:"data,omitempty"`     // 响应数据
	Error     string `json:"error,omitempty"`    // 错误详情，仅非生产环境返回
	Timestamp int64  `json:"timestamp"`          // Unix时间戳
	TraceId   string `json:"trace_id,omitempty"` // 请求追踪ID
}

// Success 创建一个成功的响应
func Success[T any](data *T, message string) *ResponseResult[T] {
	return &ResponseResult[T]{
		Code:      int(xerrors.CodeSuccess),
		Message:   message,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}
}

// Error 创建一个失败的响应，data 可以为 nil
func Error[T any](code int, message string, errDetail string, data *T) *ResponseResult[T] {
	return &ResponseResult[T]{
		Code:      code,
		Message:   message,
		Data:      data,
		Error:     errDetail,
		Timestamp: time.Now().Unix(),
	}
}

// JSON 将响应以JSON格式写入 http.ResponseWriter
func JSON[T any](w http.ResponseWriter, statusCode int, resp *ResponseResult[T]) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(resp)
}
