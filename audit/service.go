// audit/service.go
package audit

import (
	"context"
	"time"
)

type Service interface {
	LogCheck(ctx context.Context, log CheckLog) error
	QueryLogs(ctx context.Context, from, to time.Time, apiKeyID, matchID string) ([]CheckLog, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) LogCheck(ctx context.Context, log CheckLog) error {
	return s.repo.LogCheck(ctx, log)
}

func (s *service) QueryLogs(ctx context.Context, from, to time.Time, apiKeyID, matchID string) ([]CheckLog, error) {
	return s.repo.QueryLogs(ctx, from, to, apiKeyID, matchID)
}
