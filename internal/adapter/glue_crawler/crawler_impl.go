package glue_crawler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/aws/aws-sdk-go-v2/service/glue/types"
	"github.com/aws/smithy-go"
	"github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/user/glue-crawler-service/internal/entity"
	"github.com/user/glue-crawler-service/internal/repository"
	"github.com/user/glue-crawler-service/pkg/config"
)

// API is the subset of the Glue client used by the repository.
type API interface {
	CreateCrawler(ctx context.Context, params *glue.CreateCrawlerInput, optFns ...func(*glue.Options)) (*glue.CreateCrawlerOutput, error)
	UpdateCrawler(ctx context.Context, params *glue.UpdateCrawlerInput, optFns ...func(*glue.Options)) (*glue.UpdateCrawlerOutput, error)
	GetCrawler(ctx context.Context, params *glue.GetCrawlerInput, optFns ...func(*glue.Options)) (*glue.GetCrawlerOutput, error)
	GetCrawlers(ctx context.Context, params *glue.GetCrawlersInput, optFns ...func(*glue.Options)) (*glue.GetCrawlersOutput, error)
	ListCrawlers(ctx context.Context, params *glue.ListCrawlersInput, optFns ...func(*glue.Options)) (*glue.ListCrawlersOutput, error)
	StartCrawler(ctx context.Context, params *glue.StartCrawlerInput, optFns ...func(*glue.Options)) (*glue.StartCrawlerOutput, error)
	StopCrawler(ctx context.Context, params *glue.StopCrawlerInput, optFns ...func(*glue.Options)) (*glue.StopCrawlerOutput, error)
}

var (
	_ API                           = (*glue.Client)(nil)
	_ repository.CrawlerRepository = (*CrawlerRepoImpl)(nil)
)

var errEmptyResponse = errors.New("glue returned an empty response")

// NewGlueClient builds a Glue client from static credentials. The SDK retryer is
// disabled: a failed call is reported to the caller as is.
func NewGlueClient(cfg *config.Config) *glue.Client {
	opts := glue.Options{
		Region: cfg.AWSRegion,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, cfg.AWSSessionToken,
		),
		Retryer: aws.NopRetryer{},
	}
	if cfg.GlueEndpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.GlueEndpoint)
	}
	return glue.New(opts)
}

// CrawlerRepoImpl implements repository.CrawlerRepository on top of AWS Glue.
// It holds no per-request state and is safe for concurrent use.
type CrawlerRepoImpl struct {
	api API
}

// NewCrawlerRepo creates a new instance of CrawlerRepoImpl.
func NewCrawlerRepo(api API) *CrawlerRepoImpl {
	return &CrawlerRepoImpl{api: api}
}

func (r *CrawlerRepoImpl) Create(ctx context.Context, def entity.CrawlerDefinition) (*entity.RemoteResult, error) {
	out, err := r.api.CreateCrawler(ctx, &glue.CreateCrawlerInput{
		Name:               aws.String(def.Name),
		Role:               aws.String(def.Role),
		DatabaseName:       optionalString(def.DatabaseName),
		Targets:            toGlueTargets(def.Targets),
		SchemaChangePolicy: toGluePolicy(def.SchemaChangePolicy),
	})
	if err != nil {
		return nil, translateError(err)
	}
	if out == nil {
		return nil, errEmptyResponse
	}
	return newResult(out.ResultMetadata, nil), nil
}

func (r *CrawlerRepoImpl) Update(ctx context.Context, def entity.CrawlerDefinition) (*entity.RemoteResult, error) {
	out, err := r.api.UpdateCrawler(ctx, &glue.UpdateCrawlerInput{
		Name:               aws.String(def.Name),
		Role:               aws.String(def.Role),
		DatabaseName:       optionalString(def.DatabaseName),
		Targets:            toGlueTargets(def.Targets),
		SchemaChangePolicy: toGluePolicy(def.SchemaChangePolicy),
	})
	if err != nil {
		return nil, translateError(err)
	}
	if out == nil {
		return nil, errEmptyResponse
	}
	return newResult(out.ResultMetadata, nil), nil
}

func (r *CrawlerRepoImpl) Get(ctx context.Context, name string) (*entity.RemoteResult, error) {
	out, err := r.api.GetCrawler(ctx, &glue.GetCrawlerInput{Name: aws.String(name)})
	if err != nil {
		return nil, translateError(err)
	}
	if out == nil {
		return nil, errEmptyResponse
	}
	return newResult(out.ResultMetadata, map[string]any{"Crawler": out.Crawler}), nil
}

func (r *CrawlerRepoImpl) GetAll(ctx context.Context, page entity.Page) (*entity.RemoteResult, error) {
	out, err := r.api.GetCrawlers(ctx, &glue.GetCrawlersInput{
		MaxResults: optionalInt32(page.MaxResults),
		NextToken:  optionalString(page.NextToken),
	})
	if err != nil {
		return nil, translateError(err)
	}
	if out == nil {
		return nil, errEmptyResponse
	}
	body := map[string]any{"Crawlers": out.Crawlers}
	if out.NextToken != nil {
		body["NextToken"] = *out.NextToken
	}
	return newResult(out.ResultMetadata, body), nil
}

func (r *CrawlerRepoImpl) List(ctx context.Context, page entity.Page) (*entity.RemoteResult, error) {
	out, err := r.api.ListCrawlers(ctx, &glue.ListCrawlersInput{
		MaxResults: optionalInt32(page.MaxResults),
		NextToken:  optionalString(page.NextToken),
	})
	if err != nil {
		return nil, translateError(err)
	}
	if out == nil {
		return nil, errEmptyResponse
	}
	body := map[string]any{"CrawlerNames": out.CrawlerNames}
	if out.NextToken != nil {
		body["NextToken"] = *out.NextToken
	}
	return newResult(out.ResultMetadata, body), nil
}

func (r *CrawlerRepoImpl) Start(ctx context.Context, name string) (*entity.RemoteResult, error) {
	out, err := r.api.StartCrawler(ctx, &glue.StartCrawlerInput{Name: aws.String(name)})
	if err != nil {
		return nil, translateError(err)
	}
	if out == nil {
		return nil, errEmptyResponse
	}
	return newResult(out.ResultMetadata, nil), nil
}

func (r *CrawlerRepoImpl) Stop(ctx context.Context, name string) (*entity.RemoteResult, error) {
	out, err := r.api.StopCrawler(ctx, &glue.StopCrawlerInput{Name: aws.String(name)})
	if err != nil {
		return nil, translateError(err)
	}
	if out == nil {
		return nil, errEmptyResponse
	}
	return newResult(out.ResultMetadata, nil), nil
}

func toGlueTargets(t entity.CrawlerTargets) *types.CrawlerTargets {
	targets := &types.CrawlerTargets{}
	for _, s3 := range t.S3 {
		targets.S3Targets = append(targets.S3Targets, types.S3Target{Path: aws.String(s3.Path)})
	}
	for _, jdbc := range t.Jdbc {
		targets.JdbcTargets = append(targets.JdbcTargets, types.JdbcTarget{
			ConnectionName: aws.String(jdbc.ConnectionName),
			Path:           aws.String(jdbc.Path),
		})
	}
	for _, cat := range t.Catalog {
		targets.CatalogTargets = append(targets.CatalogTargets, types.CatalogTarget{
			DatabaseName: aws.String(cat.DatabaseName),
			Tables:       cat.Tables,
		})
	}
	for _, delta := range t.Delta {
		targets.DeltaTargets = append(targets.DeltaTargets, types.DeltaTarget{
			DeltaTables: delta.DeltaTables,
		})
	}
	return targets
}

func toGluePolicy(p *entity.SchemaChangePolicy) *types.SchemaChangePolicy {
	if p == nil {
		return nil
	}
	return &types.SchemaChangePolicy{
		UpdateBehavior: types.UpdateBehavior(p.UpdateBehavior),
		DeleteBehavior: types.DeleteBehavior(p.DeleteBehavior),
	}
}

// newResult attaches the response metadata to body, the way the remote API
// reports it alongside every payload.
func newResult(md middleware.Metadata, body map[string]any) *entity.RemoteResult {
	meta := responseMetadata(md)
	if body == nil {
		body = make(map[string]any, 1)
	}
	body["ResponseMetadata"] = meta
	return &entity.RemoteResult{Metadata: meta, Payload: body}
}

// responseMetadata defaults to 200 when the raw response was not recorded.
func responseMetadata(md middleware.Metadata) entity.ResponseMetadata {
	meta := entity.ResponseMetadata{HTTPStatusCode: http.StatusOK}
	if raw, ok := awsmiddleware.GetRawResponse(md).(*smithyhttp.Response); ok && raw != nil && raw.Response != nil {
		meta.HTTPStatusCode = raw.StatusCode
	}
	if id, ok := awsmiddleware.GetRequestIDMetadata(md); ok {
		meta.RequestID = id
	}
	return meta
}

// translateError turns SDK service errors into *entity.RemoteError. Errors that
// did not come from the service are wrapped and returned unchanged in kind.
func translateError(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("glue call failed: %w", err)
	}

	remote := &entity.RemoteError{
		Code:    apiErr.ErrorCode(),
		Message: apiErr.ErrorMessage(),
		Err:     err,
	}
	// Matched by method set: the SDK wraps *smithyhttp.ResponseError in its own type.
	var withStatus interface{ HTTPStatusCode() int }
	if errors.As(err, &withStatus) {
		remote.StatusCode = withStatus.HTTPStatusCode()
	}
	var withRequestID interface{ ServiceRequestID() string }
	if errors.As(err, &withRequestID) {
		remote.RequestID = withRequestID.ServiceRequestID()
	}
	return remote
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}

func optionalInt32(v int32) *int32 {
	if v <= 0 {
		return nil
	}
	return aws.Int32(v)
}
