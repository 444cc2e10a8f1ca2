package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// PoolStats is the connection pool snapshot reported by the database
// health endpoint.
type PoolStats struct {
	ConnsTotal int32 `json:"conns_total"`
	ConnsIdle  int32 `json:"conns_idle"`
	ConnsInUse int32 `json:"conns_in_use"`
	ConnsMax   int32 `json:"conns_max"`
}

type healthResponse struct {
	Status string    `json:"status"`
	Error  string    `json:"error,omitempty"`
	Pool   PoolStats `json:"pool"`
}

func poolStats(pool *pgxpool.Pool) PoolStats {
	stat := pool.Stat()
	return PoolStats{
		ConnsTotal: stat.TotalConns(),
		ConnsIdle:  stat.IdleConns(),
		ConnsInUse: stat.AcquiredConns(),
		ConnsMax:   stat.MaxConns(),
	}
}

// HealthHandler pings the database backing case snapshots and the archive
// and reports pool usage alongside the verdict.
func HealthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", Pool: poolStats(pool)}
		if err := pool.Ping(ctx); err != nil {
			resp.Status = "unavailable"
			resp.Error = err.Error()
			return c.JSON(http.StatusServiceUnavailable, resp)
		}
		return c.JSON(http.StatusOK, resp)
	}
}
