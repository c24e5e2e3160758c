package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
)

type RequestOptions struct {
	headers map[string]string
}

type RequestArgs struct {
	Router http.Handler
	Method string
	URL    string
	Body   io.Reader
}

// MakeRequest runs one request through the router and returns the recorded response.
func MakeRequest(args RequestArgs, opts ...func(*RequestOptions)) *http.Response {
	options := RequestOptions{
		headers: make(map[string]string),
	}
	for _, opt := range opts {
		opt(&options)
	}

	request := httptest.NewRequest(args.Method, args.URL, args.Body)
	for k, v := range options.headers {
		request.Header.Set(k, v)
	}

	recorder := httptest.NewRecorder()
	args.Router.ServeHTTP(recorder, request)
	return recorder.Result()
}

func WithHeader(name, value string) func(*RequestOptions) {
	return func(o *RequestOptions) {
		o.headers[name] = value
	}
}

// WithBearer authorizes the request with a jwt token. An empty token adds nothing.
func WithBearer(token string) func(*RequestOptions) {
	return func(o *RequestOptions) {
		if token != "" {
			o.headers["Authorization"] = "Bearer " + token
		}
	}
}

// JSONBody marshals v for RequestArgs.Body and goes with WithJSON.
func JSONBody(v any) io.Reader {
	if raw, ok := v.(string); ok {
		return bytes.NewBufferString(raw)
	}
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshal request body: %s", err.Error()))
	}
	return bytes.NewReader(b)
}

func WithJSON() func(*RequestOptions) {
	return WithHeader("Content-Type", "application/json")
}

// MultipartFile builds a multipart body with one file field and returns it with its content type.
func MultipartFile(field, filename, contentType string, content []byte) (io.Reader, string) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{
		fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename),
	}
	header["Content-Type"] = []string{contentType}
	part, err := w.CreatePart(header)
	if err != nil {
		panic(err)
	}
	if _, err = part.Write(content); err != nil {
		panic(err)
	}
	if err = w.Close(); err != nil {
		panic(err)
	}
	return &buf, w.FormDataContentType()
}

// DecodeJSON reads and closes the response body.
func DecodeJSON(resp *http.Response, v any) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
