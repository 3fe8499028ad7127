package userapp

import (
	"net/http"

	"github.com/polyladder/server/app/sdk/auth"
	"github.com/polyladder/server/app/sdk/mid"
	"github.com/polyladder/server/business/domain/memberbus"
	"github.com/polyladder/server/business/sdk/web"
	"github.com/polyladder/server/business/types/scope"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth      *auth.Auth
	MemberBus *memberbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)

	api := newApp(cfg.MemberBus)

	app.HandlerFunc(http.MethodGet, version, "/users/{external_id}", api.queryByExternalID, authen, mid.Authorize(cfg.Auth, scope.UsersRead))
}
