package middleware

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/csrf"
	"github.com/hertz-contrib/sessions"
	"github.com/hertz-contrib/sessions/cookie"

	"FormUp/config"
)

// CSRFMiddleware protects cookie-authenticated browser sessions. Disabled by
// default since clients normally send bearer tokens.
func CSRFMiddleware() []app.HandlerFunc {
	if !config.Cfg.CSRFEnabled {
		return nil
	}

	store := cookie.NewStore([]byte(config.Cfg.SessionSecret))

	return []app.HandlerFunc{
		sessions.New("csrf-session", store),
		csrf.New(
			csrf.WithSecret(config.Cfg.CSRFSecret),
			csrf.WithIgnoredMethods([]string{"GET", "HEAD", "OPTIONS"}),
		),
	}
}
