// Package htmx has the few htmx headers the chart pages use.
package htmx

import (
	"net/http"
	"strconv"
)

// Request reads the htmx request headers.
//
// https://htmx.org/reference/#request_headers
type Request struct {
	headers http.Header
}

func NewRequest(h http.Header) Request {
	return Request{headers: h}
}

// IsHTMXRequest returns true when the request was made by htmx, chart
// components are returned alone instead of the full page in that case.
func (r Request) IsHTMXRequest() bool {
	is, err := strconv.ParseBool(r.headers.Get("HX-Request"))
	if err != nil {
		return false
	}
	return is
}

// Response sets htmx response headers.
//
// https://htmx.org/reference/#response_headers
type Response struct {
	headers map[string]string
}

func NewResponse() *Response {
	return &Response{headers: map[string]string{}}
}

// WithPushURL pushes the URL in the browser history, so a swapped chart
// range can be bookmarked.
func (r *Response) WithPushURL(url string) *Response {
	r.headers["HX-Push-Url"] = url
	return r
}

// WithRedirect makes htmx do a full page redirect.
func (r *Response) WithRedirect(url string) *Response {
	r.headers["HX-Redirect"] = url
	return r
}

func (r *Response) SetHeaders(w http.ResponseWriter) {
	for k, v := range r.headers {
		w.Header().Set(k, v)
	}
}
