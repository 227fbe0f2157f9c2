package api

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	adapter "github.com/gwatts/gin-adapter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Thegd17/grocery-ledger-automation/customer"
	"github.com/Thegd17/grocery-ledger-automation/internal/gateway"
	"github.com/Thegd17/grocery-ledger-automation/internal/middleware"
	"github.com/Thegd17/grocery-ledger-automation/internal/o11y"
)

type API struct {
	r      *gin.Engine
	cr     *customer.Repository
	sender gateway.Sender

	checkoutSuccessURL string

	// Serializes message processing: the ledger has no store-level
	// transactions, so one message runs to completion before the next
	// snapshot is taken.
	mu sync.Mutex
}

type Config struct {
	Auth0Domain string
	Audience    string

	MetricsUsername string
	MetricsPassword string

	CheckoutSuccessURL string
}

func New(cr *customer.Repository, sender gateway.Sender, obs *o11y.Observability, cfg Config) *API {
	a := &API{
		r:                  gin.New(),
		cr:                 cr,
		sender:             sender,
		checkoutSuccessURL: cfg.CheckoutSuccessURL,
	}

	a.r.Use(gin.Recovery())
	a.r.Use(middleware.Tracing())
	a.r.Use(middleware.Logging(obs.Logger))
	a.r.Use(middleware.Metrics(obs.Registry))

	a.r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	metrics := a.r.Group("/metrics")
	if cfg.MetricsUsername != "" {
		metrics.Use(gin.BasicAuth(gin.Accounts{cfg.MetricsUsername: cfg.MetricsPassword}))
	}
	metrics.GET("", gin.WrapH(promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{})))

	a.r.POST("/webhook/messages", a.handleMessage)

	admin := a.r.Group("/admin")
	if cfg.Auth0Domain != "" {
		admin.Use(jwtAuth(cfg.Auth0Domain, cfg.Audience))
	}
	admin.GET("/customers", a.listCustomers)
	admin.GET("/customers/total", a.totalOutstanding)
	admin.POST("/customers/:name/payment-link", a.createPaymentLink)

	return a
}

func (a *API) Router() *gin.Engine {
	return a.r
}

func jwtAuth(domain, audience string) gin.HandlerFunc {
	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		panic(err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
	)
	if err != nil {
		panic(err)
	}

	jwtMiddleware := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"code":"UNAUTHORIZED","message":"Authentication required"}`))
		}),
	)

	return adapter.Wrap(jwtMiddleware.CheckJWT)
}
