// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-dataset-keeper/internal/utils"
)

// The fixed cross-origin header set stamped on every response, success or
// error. The allow-headers list mirrors what browser-based encrypted-sync
// clients send through API gateways, including the AWS signing headers.
const (
	allowOrigin  = "*"
	allowHeaders = "Content-Type, X-Amz-Date, Authorization, X-Api-Key, X-Amz-Security-Token"
	allowMethods = "GET,POST,PUT,DELETE,OPTIONS"
)

// withCORS sets the fixed CORS headers before the downstream handler runs,
// so success bodies, error bodies, and router-generated 404/405 responses
// all carry them.
//
// OPTIONS requests short-circuit here with 200 and an empty JSON object:
// a preflight must succeed for every resource path without touching any
// handler-specific logic.
func (h *Handler) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		header.Set("Access-Control-Allow-Origin", allowOrigin)
		header.Set("Access-Control-Allow-Headers", allowHeaders)
		header.Set("Access-Control-Allow-Methods", allowMethods)

		if r.Method == http.MethodOptions {
			_, _ = utils.WriteJSON(w, struct{}{}, http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
