package http

import (
	"github.com/ray-auth-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/ray-auth-api/internal/infrastructure/jwt"
	"github.com/ray-auth-api/internal/infrastructure/smtp"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	AccountRepo *dynamo.AccountRepo
	Mailer      smtp.Mailer
	JWTProvider *jwtinfra.Provider
}
