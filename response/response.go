package response

import (
	"encoding/json"
	"net/http"
)

// V1Response is the outer envelope of every API response
type V1Response struct {
	Result   interface{} `json:"result"`
	Messages []string    `json:"messages"`
}

// WriteResponse will serialize the result as JSON with a 200 status code
func WriteResponse(w http.ResponseWriter, r *http.Request, result interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(V1Response{
		Result:   result,
		Messages: []string{},
	})
}

// WriteError will serialize the Error as JSON with its status code
func WriteError(w http.ResponseWriter, r *http.Request, e *Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	messages := e.Messages
	if len(e.Message) > 0 {
		messages = append([]string{e.Message}, messages...)
	}
	json.NewEncoder(w).Encode(V1Response{
		Result:   e.Result,
		Messages: messages,
	})
}
