package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// uintParam reads a numeric chi URL parameter. ok is false when the
// segment is not a positive integer.
func uintParam(r *http.Request, name string) (uint, bool) {
	n, err := strconv.ParseUint(chi.URLParam(r, name), 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
