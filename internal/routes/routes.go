package routes

import (
	"net/http"
	"time"

	"fleet-console/internal/config"
	"fleet-console/internal/handlers"
	"fleet-console/internal/middleware"
	"fleet-console/internal/views"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter создает gin роутер консоли со всеми middleware, шаблонами и маршрутами
func NewRouter(cfg config.Config, h *handlers.Handler) (*gin.Engine, error) {
	tmpl, err := views.Parse()
	if err != nil {
		return nil, err
	}

	r := gin.New()

	// Собственный логгер вместо gin.Logger и восстановление после паники
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())

	r.Use(middleware.PrometheusMiddleware())

	r.SetTrustedProxies([]string{"127.0.0.1"})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: !allowsAnyOrigin(cfg.AllowOrigins),
		MaxAge:           12 * time.Hour,
	}))

	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(views.Static()))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", h.Health)

	pages := r.Group("")
	pages.Use(middleware.Session([]byte(cfg.SessionSecret), cfg.SessionTTL))
	SetupRoutes(pages, h)

	r.NoRoute(middleware.Session([]byte(cfg.SessionSecret), cfg.SessionTTL), h.NotFound)

	return r, nil
}

// SetupRoutes регистрирует страницы и фрагменты консоли
func SetupRoutes(pages *gin.RouterGroup, h *handlers.Handler) {
	// Поездки
	pages.GET("/", h.Controls)
	pages.GET("/control/table", h.ControlsTable)
	pages.GET("/control/new", h.ControlNew)
	pages.POST("/control/new", h.ControlCreate)
	pages.GET("/control/:id/edit", h.ControlEdit)
	pages.POST("/control/:id/edit", h.ControlUpdate)
	pages.GET("/control/:id/details", h.ControlDetails)
	pages.GET("/control/:id/delete", h.ControlDeleteConfirm)
	pages.POST("/control/:id/delete", h.ControlDelete)

	// Транспорт
	pages.GET("/vehicles", h.Vehicles)
	pages.GET("/vehicles/table", h.VehiclesTable)
	pages.GET("/vehicles/new", h.VehicleNew)
	pages.POST("/vehicles/new", h.VehicleCreate)
	pages.GET("/vehicles/:id/edit", h.VehicleEdit)
	pages.POST("/vehicles/:id/delete", h.VehicleDelete)

	// Водители
	pages.GET("/drivers", h.Drivers)
	pages.GET("/drivers/table", h.DriversTable)
	pages.GET("/drivers/new", h.DriverNew)
	pages.POST("/drivers/new", h.DriverCreate)
	pages.GET("/drivers/:id/edit", h.DriverEdit)
	pages.POST("/drivers/:id/delete", h.DriverDelete)
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
