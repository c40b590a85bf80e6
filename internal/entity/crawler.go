package entity

// TargetKind is the category of data source a crawler scans.
type TargetKind string

const (
	TargetS3      TargetKind = "s3"
	TargetJdbc    TargetKind = "jdbc"
	TargetCatalog TargetKind = "catalog"
	TargetDelta   TargetKind = "delta"
)

// Schema change behaviours understood by the remote service.
const (
	UpdateBehaviorLog              = "LOG"
	UpdateBehaviorUpdateInDatabase = "UPDATE_IN_DATABASE"

	DeleteBehaviorLog                 = "LOG"
	DeleteBehaviorDeleteFromDatabase  = "DELETE_FROM_DATABASE"
	DeleteBehaviorDeprecateInDatabase = "DEPRECATE_IN_DATABASE"
)

// CrawlerSpec is one of S3Crawler, JdbcCrawler, CatalogCrawler or DeltaCrawler.
type CrawlerSpec interface {
	Kind() TargetKind
	// Definition renders the variant into the shape the remote API expects.
	Definition() CrawlerDefinition
	crawlerSpec()
}

// CrawlerBase holds the fields every crawler variant carries.
type CrawlerBase struct {
	Name string
	// Role identifies the remote execution identity.
	Role string
}

type S3Crawler struct {
	CrawlerBase
	DatabaseName string
	S3Path       string
}

type JdbcCrawler struct {
	CrawlerBase
	DatabaseName   string
	ConnectionName string
	Path           string
}

// CatalogCrawler re-crawls existing catalog tables. Its database lives inside the
// target rather than on the crawler itself.
type CatalogCrawler struct {
	CrawlerBase
	DatabaseName   string
	Tables         string
	UpdateBehavior string
	DeleteBehavior string
}

type DeltaCrawler struct {
	CrawlerBase
	DatabaseName string
	DeltaTables  string
}

func (S3Crawler) Kind() TargetKind      { return TargetS3 }
func (JdbcCrawler) Kind() TargetKind    { return TargetJdbc }
func (CatalogCrawler) Kind() TargetKind { return TargetCatalog }
func (DeltaCrawler) Kind() TargetKind   { return TargetDelta }

func (S3Crawler) crawlerSpec()      {}
func (JdbcCrawler) crawlerSpec()    {}
func (CatalogCrawler) crawlerSpec() {}
func (DeltaCrawler) crawlerSpec()   {}

func (c S3Crawler) Definition() CrawlerDefinition {
	return CrawlerDefinition{
		Name:         c.Name,
		Role:         c.Role,
		DatabaseName: c.DatabaseName,
		Targets: CrawlerTargets{
			S3: []S3Target{{Path: c.S3Path}},
		},
	}
}

func (c JdbcCrawler) Definition() CrawlerDefinition {
	return CrawlerDefinition{
		Name:         c.Name,
		Role:         c.Role,
		DatabaseName: c.DatabaseName,
		Targets: CrawlerTargets{
			Jdbc: []JdbcTarget{{ConnectionName: c.ConnectionName, Path: c.Path}},
		},
	}
}

// Definition fills in LOG for any behaviour left empty.
func (c CatalogCrawler) Definition() CrawlerDefinition {
	policy := SchemaChangePolicy{
		UpdateBehavior: c.UpdateBehavior,
		DeleteBehavior: c.DeleteBehavior,
	}
	if policy.UpdateBehavior == "" {
		policy.UpdateBehavior = UpdateBehaviorLog
	}
	if policy.DeleteBehavior == "" {
		policy.DeleteBehavior = DeleteBehaviorLog
	}
	return CrawlerDefinition{
		Name: c.Name,
		Role: c.Role,
		Targets: CrawlerTargets{
			Catalog: []CatalogTarget{{DatabaseName: c.DatabaseName, Tables: []string{c.Tables}}},
		},
		SchemaChangePolicy: &policy,
	}
}

func (c DeltaCrawler) Definition() CrawlerDefinition {
	return CrawlerDefinition{
		Name:         c.Name,
		Role:         c.Role,
		DatabaseName: c.DatabaseName,
		Targets: CrawlerTargets{
			Delta: []DeltaTarget{{DeltaTables: []string{c.DeltaTables}}},
		},
	}
}

// CrawlerDefinition mirrors the remote create/update crawler request.
type CrawlerDefinition struct {
	Name string
	Role string
	// DatabaseName is empty for catalog crawlers.
	DatabaseName       string
	Targets            CrawlerTargets
	SchemaChangePolicy *SchemaChangePolicy
}

type CrawlerTargets struct {
	S3      []S3Target
	Jdbc    []JdbcTarget
	Catalog []CatalogTarget
	Delta   []DeltaTarget
}

type S3Target struct {
	Path string
}

type JdbcTarget struct {
	ConnectionName string
	Path           string
}

type CatalogTarget struct {
	DatabaseName string
	Tables       []string
}

type DeltaTarget struct {
	DeltaTables []string
}

type SchemaChangePolicy struct {
	UpdateBehavior string
	DeleteBehavior string
}

// Page selects a window of a paginated listing. Zero values mean "server default".
type Page struct {
	MaxResults int32
	NextToken  string
}
