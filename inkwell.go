// Package inkwell is a blog engine built with Go, Echo, and templ whose posts
// carry a scroll-synchronized table of contents.
//
// Users provide their own templ templates via the ViewFuncs struct (the
// views package ships a default set), and inkwell handles the handler
// logic, middleware, database operations and the per-page TOC widgets.
package inkwell

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/inkwell/toc"
)

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages.
type ViewFuncs struct {
	Home             func(posts []BlogPost, siteURL string) templ.Component
	Post             func(post BlogPost, nav *toc.Widget, siteURL string) templ.Component
	TOC              func(nav *toc.Widget) templ.Component
	AdminLogin       func(showError bool, csrfToken string) templ.Component
	AdminDashboard   func(posts []BlogPost, message string, csrfToken string) templ.Component
	AdminFormPartial func(post BlogPost, csrfToken string) templ.Component
	NotFound         func() templ.Component
	ServerError      func() templ.Component
}

// App is the central inkwell application. It wires together the store,
// cache, TOC registry, handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	TOC    *toc.Registry
	Views  ViewFuncs

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
	stopSweeper  func()
}

// New creates a new inkwell App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()
	if views.TOC == nil {
		views.TOC = toc.Nav
	}

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup opens the store, imports the content collection if configured and
// registers middleware and routes. Start calls it; tests call it directly.
func (a *App) Setup() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("inkwell: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("inkwell: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("inkwell: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.TOC = toc.NewRegistry(a.Config.TOCIdleTTL, toc.WithCapacity(a.Config.TOCCapacity))
	a.stopSweeper = a.TOC.StartSweeper(max(a.Config.TOCIdleTTL/2, time.Second))

	if a.Config.ContentDir != "" {
		imp := &Importer{Store: a.Store, StaticDir: a.staticDir}
		n, err := imp.ImportDir(a.Config.ContentDir)
		if err != nil {
			a.Echo.Logger.Warnf("content import: %v", err)
		}
		a.Echo.Logger.Infof("imported %d posts from %s", n, a.Config.ContentDir)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the application and starts the server.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded engine assets are served under /public/ ahead of the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/toc.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)

	// Table of contents widgets
	e.POST("/toc/:id/toggle/", a.handleTOCToggle)
	e.POST("/toc/:id/visible/", a.handleTOCVisible)
	e.POST("/toc/:id/release/", a.handleTOCRelease)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/post/:slug/", a.handleAdminPost)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/post/:slug/", a.handleAdminDelete)
	e.POST("/admin/post/:slug/delete/", a.handleAdminDelete)
}

// Close releases every mounted TOC and closes the store.
// Call this when the app is shutting down.
func (a *App) Close() error {
	if a.stopSweeper != nil {
		a.stopSweeper()
	}
	if a.TOC != nil {
		a.TOC.Close()
	}
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
