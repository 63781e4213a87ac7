// Package infra describes the deployment stack of the notes service: the
// static site, the notes table, the function serving the API and the
// gateway in front of it. The description renders to YAML for review and
// can create the table directly.
package infra

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Zone is the hosted zone every environment lives under
const Zone = "choso-dev.com"

// TableName is the table the function is pointed at through dynamoTableName
const TableName = "Notes"

// Environment is one deployment target
type Environment struct {
	Name           string `yaml:"name"`
	Domain         string `yaml:"domain"`
	FrontendDomain string `yaml:"frontendDomain"`
	BackendDomain  string `yaml:"backendDomain"`

	// UserPoolARN is the Cognito user pool whose id tokens the API accepts.
	// It is supplied at deploy time.
	UserPoolARN string `yaml:"userPoolArn,omitempty"`
}

var (
	Staging = Environment{
		Name:           "staging",
		Domain:         Zone,
		FrontendDomain: "stagingapp." + Zone,
		BackendDomain:  "stagingapi." + Zone,
	}
	Production = Environment{
		Name:           "production",
		Domain:         Zone,
		FrontendDomain: "productionapp." + Zone,
		BackendDomain:  "productionapi." + Zone,
	}
)

// LookupEnvironment returns the environment called name
func LookupEnvironment(name string) (Environment, error) {
	switch name {
	case Staging.Name:
		return Staging, nil
	case Production.Name:
		return Production, nil
	}
	return Environment{}, fmt.Errorf("unknown environment %q, want %s or %s", name, Staging.Name, Production.Name)
}

type Bucket struct {
	Name               string   `yaml:"name"`
	WebsiteIndex       string   `yaml:"websiteIndex"`
	PublicRead         bool     `yaml:"publicRead"`
	AutoDeleteObjects  bool     `yaml:"autoDeleteObjects"`
	DeploySource       string   `yaml:"deploySource"`
	InvalidatePatterns []string `yaml:"invalidatePatterns"`
}

type Certificate struct {
	Domain string `yaml:"domain"`
	Region string `yaml:"region"`
}

type Distribution struct {
	Origin                 string   `yaml:"origin"`
	Aliases                []string `yaml:"aliases"`
	ViewerProtocolPolicy   string   `yaml:"viewerProtocolPolicy"`
	SSLSupportMethod       string   `yaml:"sslSupportMethod"`
	MinimumProtocolVersion string   `yaml:"minimumProtocolVersion"`
}

// ARecord is an alias record in the hosted zone
type ARecord struct {
	Name   string `yaml:"name"`
	Target string `yaml:"target"`
}

type KeyAttribute struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type Table struct {
	Name          string        `yaml:"name"`
	PartitionKey  KeyAttribute  `yaml:"partitionKey"`
	SortKey       *KeyAttribute `yaml:"sortKey,omitempty"`
	ReadCapacity  int64         `yaml:"readCapacity"`
	WriteCapacity int64         `yaml:"writeCapacity"`
}

type Function struct {
	Name        string            `yaml:"name"`
	Runtime     string            `yaml:"runtime"`
	Handler     string            `yaml:"handler"`
	Code        string            `yaml:"code"`
	Tracing     string            `yaml:"tracing"`
	Environment map[string]string `yaml:"environment"`
}

type Policy struct {
	Name      string   `yaml:"name"`
	Actions   []string `yaml:"actions"`
	Resources []string `yaml:"resources"`
}

type Cors struct {
	AllowOrigins     []string `yaml:"allowOrigins"`
	AllowMethods     []string `yaml:"allowMethods"`
	AllowHeaders     []string `yaml:"allowHeaders"`
	AllowCredentials bool     `yaml:"allowCredentials"`
}

// Route binds one method and resource path to the function
type Route struct {
	Method string `yaml:"method"`
	Path   string `yaml:"path"`
}

func (r Route) String() string {
	return r.Method + " " + r.Path
}

// Authorizer verifies the caller's id token before the function runs. The
// function reads the caller from the OwnerClaim of the verified claims.
type Authorizer struct {
	Name           string   `yaml:"name"`
	Type           string   `yaml:"type"`
	UserPoolARNs   []string `yaml:"userPoolArns"`
	IdentitySource string   `yaml:"identitySource"`
	OwnerClaim     string   `yaml:"ownerClaim"`
}

type RestAPI struct {
	Name         string      `yaml:"name"`
	Domain       string      `yaml:"domain"`
	EndpointType string      `yaml:"endpointType"`
	Tracing      bool        `yaml:"tracing"`
	Metrics      bool        `yaml:"metrics"`
	LoggingLevel string      `yaml:"loggingLevel"`
	Cors         Cors        `yaml:"cors"`
	Authorizer   *Authorizer `yaml:"authorizer,omitempty"`
	Routes       []Route     `yaml:"routes"`
}

// Stack is the full set of resources for one environment
type Stack struct {
	Name            string       `yaml:"name"`
	Environment     Environment  `yaml:"environment"`
	Region          string       `yaml:"region"`
	SiteBucket      Bucket       `yaml:"siteBucket"`
	SiteCertificate Certificate  `yaml:"siteCertificate"`
	Distribution    Distribution `yaml:"distribution"`
	SiteRecord      ARecord      `yaml:"siteRecord"`
	Table           Table        `yaml:"table"`
	Function        Function     `yaml:"function"`
	TablePolicy     Policy       `yaml:"tablePolicy"`
	APICertificate  Certificate  `yaml:"apiCertificate"`
	API             RestAPI      `yaml:"api"`
	BackendRecord   ARecord      `yaml:"backendRecord"`
}

// Routes is the route table the function serves
func Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/notes"},
		{Method: http.MethodPost, Path: "/notes"},
		{Method: http.MethodGet, Path: "/notes/{id}"},
		{Method: http.MethodPut, Path: "/notes/{id}"},
		{Method: http.MethodDelete, Path: "/notes/{id}"},
	}
}

// NewStack describes the resources of env. The API and its certificate live
// in region; the site certificate is always in us-east-1 because CloudFront
// only reads certificates from there. With scoped set the table carries
// userId as its range key. The API gets a Cognito authorizer when the
// environment names a user pool.
func NewStack(env Environment, region string, scoped bool) *Stack {
	prefix := env.Name
	functionName := prefix + "-lambda"

	table := Table{
		Name:          TableName,
		PartitionKey:  KeyAttribute{Name: "id", Type: "S"},
		ReadCapacity:  1,
		WriteCapacity: 1,
	}
	if scoped {
		table.SortKey = &KeyAttribute{Name: "userId", Type: "S"}
	}

	var authorizer *Authorizer
	if env.UserPoolARN != "" {
		authorizer = &Authorizer{
			Name:           prefix + "-authorizer",
			Type:           "COGNITO_USER_POOLS",
			UserPoolARNs:   []string{env.UserPoolARN},
			IdentitySource: "method.request.header.Authorization",
			OwnerClaim:     "sub",
		}
	}

	return &Stack{
		Name:        strings.ToUpper(prefix[:1]) + prefix[1:] + "InfraStack",
		Environment: env,
		Region:      region,
		SiteBucket: Bucket{
			Name:               env.FrontendDomain,
			WebsiteIndex:       "index.html",
			PublicRead:         true,
			AutoDeleteObjects:  true,
			DeploySource:       "../client/build",
			InvalidatePatterns: []string{"/*"},
		},
		SiteCertificate: Certificate{Domain: env.FrontendDomain, Region: "us-east-1"},
		Distribution: Distribution{
			Origin:                 env.FrontendDomain,
			Aliases:                []string{env.FrontendDomain},
			ViewerProtocolPolicy:   "redirect-to-https",
			SSLSupportMethod:       "sni-only",
			MinimumProtocolVersion: "TLSv1.2_2021",
		},
		SiteRecord: ARecord{Name: env.FrontendDomain, Target: "distribution"},
		Table:      table,
		Function: Function{
			Name:    functionName,
			Runtime: "provided.al2023",
			Handler: "bootstrap",
			Code:    "bin/lambda.zip",
			Tracing: "Active",
			Environment: map[string]string{
				"dynamoTableName": TableName,
				"ENVIRONMENT":     env.Name,
				"SCOPE_BY_OWNER":  fmt.Sprint(scoped),
				"ENABLE_TRACING":  "true",
			},
		},
		TablePolicy: Policy{
			Name: prefix + "-tablePermissions",
			Actions: []string{
				"dynamodb:BatchGetItem",
				"dynamodb:GetItem",
				"dynamodb:Scan",
				"dynamodb:Query",
				"dynamodb:BatchWriteItem",
				"dynamodb:PutItem",
				"dynamodb:UpdateItem",
				"dynamodb:DeleteItem",
				"xray:PutTraceSegments",
				"xray:PutTelemetryRecords",
			},
			Resources: []string{fmt.Sprintf("arn:aws:dynamodb:%s:*:table/%s", region, TableName)},
		},
		APICertificate: Certificate{Domain: env.BackendDomain, Region: region},
		API: RestAPI{
			Name:         prefix + "-api",
			Domain:       env.BackendDomain,
			EndpointType: "REGIONAL",
			Tracing:      true,
			Metrics:      true,
			LoggingLevel: "INFO",
			Cors: Cors{
				AllowOrigins:     []string{"http://localhost:3000", "https://" + env.FrontendDomain},
				AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
				AllowHeaders:     []string{"Content-Type", "X-Amz-Date", "Authorization", "X-Api-Key"},
				AllowCredentials: true,
			},
			Authorizer: authorizer,
			Routes:     Routes(),
		},
		BackendRecord: ARecord{Name: env.BackendDomain, Target: "api"},
	}
}

// Validate checks that every domain sits under the zone and that the API
// binds exactly the routes the function serves
func (s *Stack) Validate() error {
	env := s.Environment
	if env.Domain == "" {
		return fmt.Errorf("environment %s: domain is required", env.Name)
	}
	for _, d := range []string{env.FrontendDomain, env.BackendDomain} {
		if !strings.HasSuffix(d, "."+env.Domain) {
			return fmt.Errorf("environment %s: %q is not under %s", env.Name, d, env.Domain)
		}
	}
	if env.FrontendDomain == env.BackendDomain {
		return fmt.Errorf("environment %s: frontend and backend share %s", env.Name, env.FrontendDomain)
	}
	if s.SiteCertificate.Region != "us-east-1" {
		return fmt.Errorf("site certificate must be in us-east-1, got %s", s.SiteCertificate.Region)
	}

	if s.Table.SortKey != nil {
		if s.API.Authorizer == nil {
			return fmt.Errorf("api %s: scoped stack needs an authorizer, set the user pool ARN", s.API.Name)
		}
		for _, arn := range s.API.Authorizer.UserPoolARNs {
			if !strings.HasPrefix(arn, "arn:aws:cognito-idp:") {
				return fmt.Errorf("api %s: %q is not a Cognito user pool ARN", s.API.Name, arn)
			}
		}
		if len(s.API.Authorizer.UserPoolARNs) == 0 || s.API.Authorizer.OwnerClaim == "" {
			return fmt.Errorf("api %s: authorizer needs a user pool and an owner claim", s.API.Name)
		}
	}

	want := routeSet(Routes())
	got := routeSet(s.API.Routes)
	if len(got) != len(s.API.Routes) {
		return fmt.Errorf("api %s: duplicate routes", s.API.Name)
	}
	var missing, extra []string
	for r := range want {
		if !got[r] {
			missing = append(missing, r)
		}
	}
	for r := range got {
		if !want[r] {
			extra = append(extra, r)
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		sort.Strings(missing)
		sort.Strings(extra)
		return fmt.Errorf("api %s: routes missing %v, unexpected %v", s.API.Name, missing, extra)
	}
	return nil
}

func routeSet(routes []Route) map[string]bool {
	set := make(map[string]bool, len(routes))
	for _, r := range routes {
		set[r.String()] = true
	}
	return set
}

// Render marshals the stack to YAML
func (s *Stack) Render() ([]byte, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to render stack %s: %w", s.Name, err)
	}
	return out, nil
}
