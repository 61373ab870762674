package webapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/auth"
	"github.com/darasahq/darasa/core/nav"
)

type authApi struct {
	gate       *auth.Gate
	validate   *validator.Validate
	translator ut.Translator
}

func registerAuthAPI(g *echo.Group, deps Deps) {
	api := authApi{
		gate:       deps.Gate,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/logout", api.logout)

	g.GET("/me", api.me)
}

// Handlers

func (api *authApi) login(ctx echo.Context) error {
	var data auth.Attempt
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Attempt")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sess, err := api.gate.Login(data)
	if err != nil {
		switch errors.Cause(err) {
		case auth.ErrAuthenticationFailed:
			return core.NewValidationError(errors.New("invalid credentials"))
		case auth.ErrLoginInFlight:
			// not an error to the user: the pending evaluation decides
			return ctx.JSON(http.StatusAccepted, echo.Map{"detail": "sign-in already in progress"})
		default:
			return errors.Wrap(err, "authenticating")
		}
	}

	home, err := nav.DefaultView(sess.Identity.Role)
	if err != nil {
		return errors.Wrap(err, "resolving default view")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Session: sess, Redirect: home.Path})
}

func (api *authApi) logout(ctx echo.Context) error {
	api.gate.Logout() // safe to repeat
	return ctx.NoContent(http.StatusNoContent)
}

func (api *authApi) me(ctx echo.Context) error {
	snap := api.gate.Snapshot()
	res := MeResponse{
		State:   snap.State.String(),
		Loading: snap.Loading,
	}
	if snap.State == auth.Authenticated {
		ident := snap.Session.Identity
		res.Identity = &ident
	}
	return ctx.JSON(http.StatusOK, res)
}
