// Command server exposes the receipt engine over HTTP for host
// applications: POST /print takes a payload and answers with the printer
// acknowledgment or a typed error.
package main

import (
	"errors"
	"flag"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/souqtech/receipt-printer/internal/config"
	"github.com/souqtech/receipt-printer/internal/engine"
	"github.com/souqtech/receipt-printer/internal/escpos"
	"github.com/souqtech/receipt-printer/internal/transport"
	"github.com/souqtech/receipt-printer/pkg/payload"
)

func main() {
	var addr string
	flag.StringVar(&addr, "addr", ":12212", "listen address")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.FromEnv()
	eng, err := engine.New(cfg, log)
	if err != nil {
		log.Fatal("engine init failed", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestID())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/print", func(c *gin.Context) {
		reqLog := log.With(zap.String("request_id", c.GetString("request_id")))

		var req payload.Receipt
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ack, err := eng.Print(&req)
		if err != nil {
			reqLog.Error("print failed", zap.Error(err))
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		reqLog.Info("print succeeded", zap.String("ack", ack))
		c.JSON(http.StatusOK, gin.H{"message": ack})
	})

	log.Info("server listening", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// statusFor maps the engine's typed errors onto HTTP status codes.
func statusFor(err error) int {
	var (
		validation *payload.ValidationError
		encoding   *escpos.EncodingError
		open       *transport.OpenError
		write      *transport.WriteError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &encoding):
		return http.StatusInternalServerError
	case errors.As(err, &open):
		return http.StatusServiceUnavailable
	case errors.As(err, &write):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
