package gameapp

import (
	"net/http"

	"github.com/polyladder/server/app/sdk/auth"
	"github.com/polyladder/server/app/sdk/mid"
	"github.com/polyladder/server/business/domain/gamebus"
	"github.com/polyladder/server/business/sdk/web"
	"github.com/polyladder/server/business/types/scope"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth    *auth.Auth
	GameBus *gamebus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)

	api := newApp(cfg.GameBus)

	app.HandlerFunc(http.MethodGet, version, "/games/{game_id}", api.queryByID, authen, mid.Authorize(cfg.Auth, scope.GamesRead))
	app.HandlerFunc(http.MethodPost, version, "/game/new", api.create, authen, mid.Authorize(cfg.Auth, scope.GamesNew))
}
