package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/user/glue-crawler-service/internal/entity"
	"github.com/user/glue-crawler-service/internal/repository"
	"github.com/user/glue-crawler-service/pkg/metrics"
)

const (
	startedMessage = "Crawler started successfully"
	stoppedMessage = "Crawler stopped successfully"
)

// CrawlerManager exposes the crawler operations. Every method returns exactly one
// outcome and never an error: failures are part of the outcome.
type CrawlerManager interface {
	Create(ctx context.Context, spec entity.CrawlerSpec) entity.Outcome
	Update(ctx context.Context, spec entity.CrawlerSpec) entity.Outcome
	Get(ctx context.Context, name string) entity.Outcome
	GetAll(ctx context.Context, page entity.Page) entity.Outcome
	List(ctx context.Context, page entity.Page) entity.Outcome
	Start(ctx context.Context, name string) entity.Outcome
	Stop(ctx context.Context, name string) entity.Outcome
}

type remoteCall func(ctx context.Context) (*entity.RemoteResult, error)

// successData picks what a successful call hands back to the caller.
type successData func(res *entity.RemoteResult) any

type crawlerManager struct {
	repo    repository.CrawlerRepository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewCrawlerManager creates a new instance of the crawler use case.
func NewCrawlerManager(repo repository.CrawlerRepository, m *metrics.Metrics, logger *zap.Logger) CrawlerManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &crawlerManager{
		repo:    repo,
		metrics: m,
		logger:  logger,
	}
}

func (uc *crawlerManager) Create(ctx context.Context, spec entity.CrawlerSpec) entity.Outcome {
	if spec == nil {
		return entity.UnhandledException()
	}
	return uc.invoke(ctx, VerbCreate, operationName(VerbCreate, spec.Kind()), func(ctx context.Context) (*entity.RemoteResult, error) {
		return uc.repo.Create(ctx, spec.Definition())
	}, noData)
}

func (uc *crawlerManager) Update(ctx context.Context, spec entity.CrawlerSpec) entity.Outcome {
	if spec == nil {
		return entity.UnhandledException()
	}
	return uc.invoke(ctx, VerbUpdate, operationName(VerbUpdate, spec.Kind()), func(ctx context.Context) (*entity.RemoteResult, error) {
		return uc.repo.Update(ctx, spec.Definition())
	}, payloadData)
}

func (uc *crawlerManager) Get(ctx context.Context, name string) entity.Outcome {
	return uc.invoke(ctx, VerbGet, operationName(VerbGet, ""), func(ctx context.Context) (*entity.RemoteResult, error) {
		return uc.repo.Get(ctx, name)
	}, payloadData)
}

func (uc *crawlerManager) GetAll(ctx context.Context, page entity.Page) entity.Outcome {
	return uc.invoke(ctx, VerbGetAll, operationName(VerbGetAll, ""), func(ctx context.Context) (*entity.RemoteResult, error) {
		return uc.repo.GetAll(ctx, page)
	}, payloadData)
}

func (uc *crawlerManager) List(ctx context.Context, page entity.Page) entity.Outcome {
	return uc.invoke(ctx, VerbList, operationName(VerbList, ""), func(ctx context.Context) (*entity.RemoteResult, error) {
		return uc.repo.List(ctx, page)
	}, payloadData)
}

func (uc *crawlerManager) Start(ctx context.Context, name string) entity.Outcome {
	return uc.invoke(ctx, VerbStart, operationName(VerbStart, ""), func(ctx context.Context) (*entity.RemoteResult, error) {
		return uc.repo.Start(ctx, name)
	}, messageData(startedMessage))
}

func (uc *crawlerManager) Stop(ctx context.Context, name string) entity.Outcome {
	return uc.invoke(ctx, VerbStop, operationName(VerbStop, ""), func(ctx context.Context) (*entity.RemoteResult, error) {
		return uc.repo.Stop(ctx, name)
	}, messageData(stoppedMessage))
}

// invoke performs the single remote call behind an operation and classifies
// its result. Panics are turned into an unhandled exception.
func (uc *crawlerManager) invoke(ctx context.Context, verb Verb, op string, call remoteCall, data successData) (out entity.Outcome) {
	start := time.Now()
	var errorCode string

	defer func() {
		if r := recover(); r != nil {
			uc.logger.Error("Recovered from panic in crawler operation",
				zap.String("operation", op), zap.Any("panic", r))
			out = entity.UnhandledException()
		}
		if uc.metrics != nil {
			uc.metrics.ObserveRemoteCall(op, out.Kind.String(), errorCode, time.Since(start))
		}
	}()

	res, err := call(ctx)
	if err != nil {
		var remoteErr *entity.RemoteError
		if errors.As(err, &remoteErr) {
			errorCode = remoteErr.Code
			if Handles(verb, remoteErr.Code) {
				uc.logger.Info("Crawler API reported an error",
					zap.String("operation", op),
					zap.String("code", remoteErr.Code),
					zap.Int("status", remoteErr.StatusCode),
					zap.String("request_id", remoteErr.RequestID),
				)
				return entity.Exception(remoteErr.StatusCode, remoteErr.Detail())
			}
		}
		uc.logger.Warn("Unhandled crawler API failure", zap.String("operation", op), zap.Error(err))
		return entity.UnhandledException()
	}
	if res == nil {
		uc.logger.Warn("Crawler API returned no result", zap.String("operation", op))
		return entity.UnhandledException()
	}

	status := res.Metadata.HTTPStatusCode
	if !entity.IsOK(status) {
		uc.logger.Warn("Crawler API returned a non-success status",
			zap.String("operation", op), zap.Int("status", status))
		return entity.DomainError(status, res.Payload)
	}
	return entity.Success(status, data(res))
}

// operationName matches the route name of the operation, e.g. "create_s3_crawler".
func operationName(verb Verb, kind entity.TargetKind) string {
	switch verb {
	case VerbCreate, VerbUpdate:
		return fmt.Sprintf("%s_%s_crawler", verb, kind)
	case VerbGetAll:
		return "get_crawlers"
	case VerbList:
		return "list_crawlers"
	default:
		return fmt.Sprintf("%s_crawler", verb)
	}
}

func noData(*entity.RemoteResult) any { return nil }

func payloadData(res *entity.RemoteResult) any { return res.Payload }

func messageData(msg string) successData {
	return func(*entity.RemoteResult) any {
		return map[string]string{"message": msg}
	}
}
