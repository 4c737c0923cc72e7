// Package api exposes the HTTP/JSON surface over the entity services.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/openmerch/shopcore/internal/accounts"
	"github.com/openmerch/shopcore/internal/customers"
	"github.com/openmerch/shopcore/internal/orders"
	"github.com/openmerch/shopcore/internal/products"
	"github.com/openmerch/shopcore/pkg/validation"
)

var httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "shopcore_http_requests_total",
	Help: "Total number of HTTP requests by method, route and status",
}, []string{"method", "route", "status"})

// Server represents the API server
type Server struct {
	router    *gin.Engine
	logger    *zap.Logger
	validate  *validation.Validator
	customers customers.CustomerService
	accounts  accounts.AccountService
	products  products.ProductService
	orders    orders.OrderService
}

// NewServer creates a new API server with injected entity services
func NewServer(
	logger *zap.Logger,
	customerSvc customers.CustomerService,
	accountSvc accounts.AccountService,
	productSvc products.ProductService,
	orderSvc orders.OrderService,
) *Server {
	server := &Server{
		logger:    logger,
		validate:  validation.New(),
		customers: customerSvc,
		accounts:  accountSvc,
		products:  productSvc,
		orders:    orderSvc,
	}

	router := gin.New()
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))
	router.Use(requestIDMiddleware())
	router.Use(metricsMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	server.router = router
	server.registerRoutes()
	return server
}

// Start starts the API server
func (s *Server) Start(addr string) error {
	s.logger.Info("starting API server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Router returns the internal gin engine for embedding and tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	customers := s.router.Group("/customers")
	{
		customers.POST("", s.addCustomer)
		customers.GET("", s.listCustomers)
		customers.GET("/:id", s.getCustomer)
		customers.PUT("/:id", s.updateCustomer)
		customers.DELETE("/:id", s.deleteCustomer)
	}

	accounts := s.router.Group("/customer_accounts")
	{
		accounts.POST("", s.addAccount)
		accounts.GET("", s.listAccounts)
		accounts.GET("/:id", s.getAccount)
		accounts.PUT("/:id", s.updateAccount)
		accounts.DELETE("/:id", s.deleteAccount)
	}

	products := s.router.Group("/products")
	{
		products.POST("", s.addProduct)
		products.GET("", s.listProducts)
		products.GET("/:id", s.getProduct)
		products.PUT("/:id", s.updateProduct)
		products.DELETE("/:id", s.deleteProduct)
	}

	orders := s.router.Group("/orders")
	{
		orders.POST("", s.placeOrder)
		orders.GET("", s.listOrders)
		orders.GET("/:id", s.getOrder)
		orders.PUT("/:id", s.updateOrder)
		orders.DELETE("/:id", s.deleteOrder)
	}

	// Track an order with its products expanded.
	s.router.GET("/order_product/:id", s.trackOrder)
}

// healthCheck handles the health check endpoint
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now()})
}

// requestIDMiddleware tags every request with an id for log correlation
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// metricsMiddleware counts requests per method, route and status
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
