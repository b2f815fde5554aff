package application

import "expvar"

// Counters exported on /api/debug/vars.
var (
	metricLogins         = expvar.NewInt("auth_logins")
	metricFailedLogins   = expvar.NewInt("auth_failed_logins")
	metricResetRequests  = expvar.NewInt("auth_password_reset_requests")
	metricResetCompleted = expvar.NewInt("auth_password_resets")
)
