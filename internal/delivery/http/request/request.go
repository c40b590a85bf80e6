package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/user/glue-crawler-service/internal/entity"
)

// ErrMalformedBody is returned when the body is not valid JSON for the payload.
var ErrMalformedBody = errors.New("malformed request body")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their wire name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CrawlerRequest is a create/update payload for one target kind.
type CrawlerRequest interface {
	ToEntity() entity.CrawlerSpec
}

// CrawlerBaseRequest holds the fields shared by every crawler payload.
type CrawlerBaseRequest struct {
	Name string `json:"Name" validate:"required,min=1,max=255"`
	Role string `json:"Role" validate:"required"`
}

type S3CrawlerRequest struct {
	CrawlerBaseRequest
	DatabaseName string `json:"DatabaseName" validate:"required"`
	S3Path       string `json:"S3Path" validate:"required"`
}

type JdbcCrawlerRequest struct {
	CrawlerBaseRequest
	DatabaseName   string `json:"DatabaseName" validate:"required"`
	ConnectionName string `json:"ConnectionName" validate:"required"`
	Path           string `json:"Path" validate:"required"`
}

// CatalogCrawlerRequest leaves UpdateBehavior and DeleteBehavior optional; both default to LOG.
type CatalogCrawlerRequest struct {
	CrawlerBaseRequest
	DatabaseName   string `json:"DatabaseName" validate:"required"`
	Tables         string `json:"Tables" validate:"required"`
	UpdateBehavior string `json:"UpdateBehavior,omitempty"`
	DeleteBehavior string `json:"DeleteBehavior,omitempty"`
}

type DeltaCrawlerRequest struct {
	CrawlerBaseRequest
	DatabaseName string `json:"DatabaseName" validate:"required"`
	DeltaTables  string `json:"DeltaTables" validate:"required"`
}

func (r *CrawlerBaseRequest) base() entity.CrawlerBase {
	return entity.CrawlerBase{Name: r.Name, Role: r.Role}
}

func (r *S3CrawlerRequest) ToEntity() entity.CrawlerSpec {
	return entity.S3Crawler{
		CrawlerBase:  r.base(),
		DatabaseName: r.DatabaseName,
		S3Path:       r.S3Path,
	}
}

func (r *JdbcCrawlerRequest) ToEntity() entity.CrawlerSpec {
	return entity.JdbcCrawler{
		CrawlerBase:    r.base(),
		DatabaseName:   r.DatabaseName,
		ConnectionName: r.ConnectionName,
		Path:           r.Path,
	}
}

func (r *CatalogCrawlerRequest) ToEntity() entity.CrawlerSpec {
	c := entity.CatalogCrawler{
		CrawlerBase:    r.base(),
		DatabaseName:   r.DatabaseName,
		Tables:         r.Tables,
		UpdateBehavior: r.UpdateBehavior,
		DeleteBehavior: r.DeleteBehavior,
	}
	if c.UpdateBehavior == "" {
		c.UpdateBehavior = entity.UpdateBehaviorLog
	}
	if c.DeleteBehavior == "" {
		c.DeleteBehavior = entity.DeleteBehaviorLog
	}
	return c
}

func (r *DeltaCrawlerRequest) ToEntity() entity.CrawlerSpec {
	return entity.DeltaCrawler{
		CrawlerBase:  r.base(),
		DatabaseName: r.DatabaseName,
		DeltaTables:  r.DeltaTables,
	}
}

// Bind decodes body into req and validates it.
func Bind(body io.Reader, req CrawlerRequest) error {
	if err := json.NewDecoder(body).Decode(req); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return Validate(req)
}

// Validate checks field presence and the Name length bounds.
func Validate(req CrawlerRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return &ValidationError{Fields: msgs}
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + strings.Join(e.Fields, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
