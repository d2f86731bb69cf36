package usecase

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"consultant-tracker-backend/pkg/redis"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	db *pgxpool.Pool
}

func NewHealthUsecase(db *pgxpool.Pool) HealthUsecase {
	return &healthUsecase{db: db}
}

// Check reports per-dependency status. A database failure degrades overall
// status; Redis is optional and only reported.
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	result := map[string]string{"status": "ok"}

	if err := u.db.Ping(ctx); err != nil {
		result["status"] = "degraded"
		result["database"] = "down"
	} else {
		result["database"] = "up"
	}

	if !redis.IsAvailable() {
		result["redis"] = "not configured"
	} else if err := redis.HealthCheck(ctx); err != nil {
		result["redis"] = "down"
	} else {
		result["redis"] = "up"
	}

	return result
}
