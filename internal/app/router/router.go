package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	accountshandler "kanairy_backend/internal/feature/accounts/transport/handler"
	newshandler "kanairy_backend/internal/feature/news/transport/handler"
	ordershandler "kanairy_backend/internal/feature/orders/transport/handler"
	tradinghandler "kanairy_backend/internal/feature/trading/transport/handler"
	platformhandler "kanairy_backend/internal/platform/http/handler"
	jwtmw "kanairy_backend/internal/platform/jwt"
)

// NewRouter wires all HTTP routes. Routes under the authenticated group
// require the bearer token issued at broker connect time.
func NewRouter(system *platformhandler.SystemHandler, accounts *accountshandler.AccountsHandler,
	trading *tradinghandler.TradingHandler, orders *ordershandler.OrdersHandler,
	news *newshandler.NewsHandler, jwtSecret string) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	// No authentication required
	r.GET("/", system.Root)
	r.GET("/api/health", system.Health)
	r.HEAD("/api/health", system.Health)
	r.GET("/api/status", system.Status)
	r.POST("/api/users/connect", accounts.Connect)
	r.GET("/api/news", news.List)
	r.POST("/api/news", news.Create)

	// Authenticated routes
	auth := r.Group("/api")
	auth.Use(jwtmw.AuthRequired(jwtSecret))
	{
		auth.POST("/trade", trading.Trade)
		auth.POST("/positions/close", trading.Close)
		auth.GET("/users/:id", accounts.GetUser)
		auth.GET("/users/:id/account", accounts.GetAccount)
		auth.GET("/users/:id/positions", trading.Positions)
		auth.GET("/users/:id/orders", orders.List)
	}

	return r
}
