// Package all binds every route group into the mux.
package all

import (
	"github.com/polyladder/server/app/domain/checkapp"
	"github.com/polyladder/server/app/domain/gameapp"
	"github.com/polyladder/server/app/domain/userapp"
	"github.com/polyladder/server/app/sdk/mux"
	"github.com/polyladder/server/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// of RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

func (add) Add(app *web.App, cfg mux.Config) {
	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
	})

	userapp.Routes(app, userapp.Config{
		Auth:      cfg.AuthConfig.Auth,
		MemberBus: cfg.BusConfig.MemberBus,
	})

	gameapp.Routes(app, gameapp.Config{
		Auth:    cfg.AuthConfig.Auth,
		GameBus: cfg.BusConfig.GameBus,
	})
}
