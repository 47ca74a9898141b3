package rendezvous

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mbd888/rendezvous/internal/config"
)

const (
	createPath  = "/_synapse/client/rendezvous"
	sessionPath = "/_synapse/client/rendezvous"
	legacyPath  = "/_matrix/client/unstable/org.matrix.msc3886/rendezvous"
)

// DelegateHandler returns a handler that unconditionally 307-redirects to
// target, used by both delegated mode and the independent legacy path
// (§4.5). The redirect carries no state of its own: the client is expected
// to retry the original method and body against target.
func DelegateHandler(target string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, target)
	}
}

// Mount wires the rendezvous endpoint onto r according to cfg.Mode, plus the
// independent legacy redirect when cfg.LegacyURL is set. clock and logger
// are only used in native mode, where Mount constructs the MemoryStore.
//
//   - disabled: nothing is registered; the route 404s via the router's
//     default NotFound handler.
//   - native: full CRUD is registered, backed by a fresh MemoryStore.
//   - delegated: the create route 307-redirects to cfg.DelegationURL, and
//     no store is ever instantiated.
//
// The legacy path redirects to cfg.LegacyURL regardless of cfg.Mode, since
// spec.md treats it as an independent, always-on alias when configured.
func Mount(r gin.IRouter, cfg *config.Config, clock Clock, logger *slog.Logger) {
	switch cfg.Mode {
	case config.ModeNative:
		store := NewMemoryStore(clock, cfg.TTL, cfg.SoftCapacity, cfg.HardCapacity, cfg.MaxContentLength, logger)
		urls := NewURLBuilder(cfg.URLPrefix)
		h := NewHandler(store, urls, cfg.MaxContentLength)
		h.Register(r, createPath, sessionPath)
	case config.ModeDelegated:
		r.Use(responseHeadersMiddleware())
		r.POST(createPath, DelegateHandler(cfg.DelegationURL))
	case config.ModeDisabled:
		// Intentionally nothing registered.
	}

	if cfg.LegacyURL != "" {
		r.Any(legacyPath, DelegateHandler(cfg.LegacyURL))
	}
}
