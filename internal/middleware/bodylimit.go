// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// MaxBody caps every request body at limit bytes. It must run before any
// middleware that parses forms: form parsing spills large multipart bodies
// to temp files, so without a cap a single oversized upload can fill the
// disk before the handler is ever reached.
//
// Requests declaring a larger Content-Length are rejected with 413 up
// front; chunked bodies are wrapped in http.MaxBytesReader so a read past
// the limit fails with *http.MaxBytesError, which form parsing surfaces to
// the handler.
func MaxBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				http.Error(w, "Request body too large.", http.StatusRequestEntityTooLarge)
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
