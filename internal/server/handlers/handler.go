package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/epd-dashboard/internal/config"
	"github.com/mamadbah2/epd-dashboard/internal/loader"
	"github.com/mamadbah2/epd-dashboard/internal/notify"
	"github.com/mamadbah2/epd-dashboard/internal/server/views"
	"github.com/mamadbah2/epd-dashboard/internal/service/resources"
	"github.com/mamadbah2/epd-dashboard/internal/session"
)

// pages holds what every HTML handler needs to render a page around the
// shared layout.
type pages struct {
	svc          *resources.Set
	cookieSecure bool
	logger       *zap.Logger
}

func newPages(svc *resources.Set, cfg config.SessionConfig, logger *zap.Logger) pages {
	if logger == nil {
		logger = zap.NewNop()
	}
	return pages{svc: svc, cookieSecure: cfg.CookieSecure, logger: logger}
}

// notices returns the collector for this request, seeded with anything
// carried over from the redirect that led here.
func (p pages) notices(c *gin.Context) (*notify.Flash, notify.Notifier) {
	var carried []notify.Notice
	if value, err := c.Cookie(notify.CookieName); err == nil {
		carried = notify.DecodeCookie(value)
		http.SetCookie(c.Writer, notify.ExpiredCookie(p.cookieSecure))
	}
	flash := notify.NewFlash(carried...)
	return flash, notify.NewLogged(flash, p.logger)
}

// render writes a page. The sidebar processes are loaded unless the page
// already carries them.
func (p pages) render(c *gin.Context, status int, name string, page views.Page, flash *notify.Flash, n notify.Notifier) {
	if page.Processes == nil {
		page.Processes = loader.Processes(p.svc.Processes.List, n).Load(c.Request.Context(), loader.None{}).Data
	}
	if state := session.FromContext(c); state != nil {
		page.User = state.User()
	}
	page.ActivePath = c.Request.URL.Path
	page.Notices = flash.Notices()

	session.RelayCookies(c)
	c.HTML(status, name, page)
}

// redirect ends a form submission, carrying its notices to the next page.
func (p pages) redirect(c *gin.Context, location string, flash *notify.Flash) {
	p.redirectWith(c, http.StatusSeeOther, location, flash)
}

func (p pages) redirectFound(c *gin.Context, location string, flash *notify.Flash) {
	p.redirectWith(c, http.StatusFound, location, flash)
}

func (p pages) redirectWith(c *gin.Context, status int, location string, flash *notify.Flash) {
	if cookie := notify.EncodeCookie(flash.Notices(), p.cookieSecure); cookie != nil {
		http.SetCookie(c.Writer, cookie)
	}
	session.RelayCookies(c)
	c.Redirect(status, location)
}
