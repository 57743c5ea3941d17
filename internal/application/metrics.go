package application

import "expvar"

var (
	usersCreated = expvar.NewInt("users_created")
	tokensIssued = expvar.NewInt("tokens_issued")
	authFailures = expvar.NewInt("auth_failures")
)
