package model

import "encoding/json"

// ApiResponse is the envelope every typed client call resolves to.
// While IsLoading is true both Data and Error are empty; afterwards exactly
// one of them is set. On the wire an empty Error is null:
// {"data":...,"error":null,"isLoading":false}.
type ApiResponse[T any] struct {
	Data      *T
	Error     string
	IsLoading bool
}

type apiResponseJSON[T any] struct {
	Data      *T      `json:"data"`
	Error     *string `json:"error"`
	IsLoading bool    `json:"isLoading"`
}

func (r ApiResponse[T]) MarshalJSON() ([]byte, error) {
	out := apiResponseJSON[T]{Data: r.Data, IsLoading: r.IsLoading}
	if r.Error != "" {
		out.Error = &r.Error
	}
	return json.Marshal(out)
}

func (r *ApiResponse[T]) UnmarshalJSON(b []byte) error {
	var in apiResponseJSON[T]
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*r = ApiResponse[T]{Data: in.Data, IsLoading: in.IsLoading}
	if in.Error != nil {
		r.Error = *in.Error
	}
	return nil
}

// UnknownError is the message used when a failure carries no description.
const UnknownError = "Unknown error"

// Loading returns the initial in-flight state.
func Loading[T any]() ApiResponse[T] {
	return ApiResponse[T]{IsLoading: true}
}

// Success wraps a decoded payload.
func Success[T any](data *T) ApiResponse[T] {
	return ApiResponse[T]{Data: data}
}

// Failure wraps an error message. An empty message becomes UnknownError so
// a settled response never has both fields empty.
func Failure[T any](msg string) ApiResponse[T] {
	if msg == "" {
		msg = UnknownError
	}
	return ApiResponse[T]{Error: msg}
}

// Failed reports whether the response settled with an error.
func (r ApiResponse[T]) Failed() bool {
	return !r.IsLoading && r.Error != ""
}

// Settled reports whether the response is no longer loading.
func (r ApiResponse[T]) Settled() bool {
	return !r.IsLoading
}
