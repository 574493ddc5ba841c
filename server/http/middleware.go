package http_server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bazario/fulfillment-service/app"
	"github.com/bazario/fulfillment-service/domain/actions"
	"github.com/bazario/fulfillment-service/domain/events"
)

const actorContextKey = "actor"

type JWTClaims struct {
	UserID uint64 `json:"userId"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// AuthMiddleware resolves the bearer token into an ActorIdentity and puts
// it on the request context. Tokens carry the actor role as a claim; role
// checks against concrete routes happen in RequireRole.
func AuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing authorization header"})
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid authorization header format"})
			}

			claims := &JWTClaims{}
			token, err := jwt.ParseWithClaims(tokenParts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired token"})
			}

			role, err := actions.FromString(claims.Role)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unknown actor role"})
			}

			c.Set(actorContextKey, events.ActorIdentity{ID: claims.UserID, Role: role})
			return next(c)
		}
	}
}

// GenerateToken mints a signed actor token, used by tests and by the
// identity service during login.
func GenerateToken(secret string, userId uint64, role actions.ActionType, ttl time.Duration) (string, error) {
	claims := &JWTClaims{
		UserID: userId,
		Role:   role.Name(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func RequireRole(role actions.ActionType) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := c.Get(actorContextKey).(events.ActorIdentity)
			if !ok {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
			}
			if actor.Role != role {
				return c.JSON(http.StatusForbidden, ErrorResponse{Error: "role not permitted on this route"})
			}
			return next(c)
		}
	}
}

func actorOf(c echo.Context) events.ActorIdentity {
	actor, _ := c.Get(actorContextKey).(events.ActorIdentity)
	return actor
}

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_http_requests_total",
			Help: "Count of handled http requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fulfillment_http_request_duration_seconds",
			Help:    "Latency of handled http requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration)
}

func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			status := c.Response().Status
			if err != nil {
				if httpError, ok := err.(*echo.HTTPError); ok {
					status = httpError.Code
				}
			}

			httpRequestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// RequestLogMiddleware logs every request once on completion.
func RequestLogMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			app.Globals.Logger.Infow("http request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"durationMs", time.Since(start).Milliseconds(),
				"remoteIp", c.RealIP())
			return err
		}
	}
}
