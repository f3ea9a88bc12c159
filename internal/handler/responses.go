package handler

import (
	"encoding/json"
	"net/http"
)

// successEnvelope は成功レスポンスの統一フォーマット。
type successEnvelope struct {
	Message string         `json:"message"`
	Status  bool           `json:"status"`
	Content map[string]any `json:"content"`
}

// writeSuccessEnvelope は成功レスポンスを統一フォーマットで書き込む。
func writeSuccessEnvelope(w http.ResponseWriter, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(successEnvelope{
		Message: message,
		Status:  true,
		Content: map[string]any{"data": data},
	})
}

// writeJSON は任意のペイロードをJSONで書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}
