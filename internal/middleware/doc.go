// Package middleware provides the HTTP middleware for the time tracker API:
// the bearer-token authentication guard, request ids, structured request
// logging, panic recovery, CORS, and per-caller rate limiting.
//
// Middlewares compose with Chain:
//
//	handler := middleware.Chain(mux,
//	    middleware.RequestID,
//	    middleware.Logger,
//	    middleware.Recovery,
//	    middleware.CORS([]string{"*"}),
//	)
//
// Auth is applied per-route rather than globally, because the health,
// metrics, and provisioning hook endpoints do not carry bearer tokens.
package middleware
