package di

import (
	"context"
	"fmt"

	"notes-backend/application/commands"
	"notes-backend/application/commands/bus"
	commands_handlers "notes-backend/application/commands/handlers"
	"notes-backend/application/ports"
	"notes-backend/application/queries"
	querybus "notes-backend/application/queries/bus"
	queries_handlers "notes-backend/application/queries/handlers"
	"notes-backend/infrastructure/config"
	"notes-backend/infrastructure/persistence/dynamodb"
	"notes-backend/infrastructure/persistence/memory"
	"notes-backend/interfaces/http/rest"
	"notes-backend/pkg/auth"
	pkgerrors "notes-backend/pkg/errors"
	"notes-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance at the configured level
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	zapCfg.Level = level

	return zapCfg.Build()
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(cfg.ServiceName, cfg.EnableTracing)
}

// ProvideAWSConfig creates AWS configuration with SDK calls traced
func ProvideAWSConfig(ctx context.Context, cfg *config.Config, tracer *observability.Tracer) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}

	tracer.InstrumentAWS(&awsCfg)
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client, pointed at a local
// endpoint when one is configured
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideNoteStore selects the store backend
func ProvideNoteStore(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.NoteStore {
	if cfg.StoreBackend == config.StoreMemory {
		logger.Warn("Using in-memory note store; notes are lost on exit")
		return memory.NewNoteStore(cfg.ScopeByOwner)
	}
	return dynamodb.NewNoteStore(client, cfg.TableName, cfg.ScopeByOwner, logger)
}

// ProvideMetrics creates metrics instance. Disabled metrics record nothing.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	namespace := fmt.Sprintf("%s/%s", cfg.MetricsNamespace, cfg.Environment)
	if !cfg.EnableMetrics {
		return observability.NewMetrics(namespace, nil, logger)
	}
	return observability.NewMetrics(namespace, client, logger)
}

// ProvideIdentityResolver builds the caller lookup chain. Deployed
// functions trust only the API Gateway authorizer claims; the header and
// local bearer sources are opt-in and never used in production.
func ProvideIdentityResolver(cfg *config.Config) (auth.IdentityResolver, error) {
	resolvers := []auth.IdentityResolver{
		auth.APIGatewayClaims(),
		auth.APIGatewayV2Claims(),
	}
	if cfg.IsProduction() {
		return auth.Chain(resolvers...), nil
	}

	if cfg.TrustIdentityHeader {
		resolvers = append(resolvers, auth.TrustedHeader(cfg.IdentityHeader))
	}
	if cfg.JWTSecret != "" {
		validator, err := auth.NewJWTValidator(cfg.JWTSecret, cfg.JWTIssuer)
		if err != nil {
			return nil, err
		}
		resolvers = append(resolvers, auth.BearerToken(validator))
	}

	return auth.Chain(resolvers...), nil
}

// ProvideCommandBus registers the note command handlers
func ProvideCommandBus(
	store ports.NoteStore,
	tracer *observability.Tracer,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(
		bus.LoggingMiddleware(logger),
		bus.TracingMiddleware(tracer),
		bus.MetricsMiddleware(metrics),
	)

	createHandler := commands_handlers.NewCreateNoteHandler(store, logger)
	if err := commandBus.Register(commands.CreateNoteCommand{}, bus.CommandHandlerFunc(
		func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			createCmd, ok := cmd.(commands.CreateNoteCommand)
			if !ok {
				return nil, pkgerrors.NewInternalError("invalid command type")
			}
			return createHandler.Handle(ctx, createCmd)
		},
	)); err != nil {
		return nil, err
	}

	updateHandler := commands_handlers.NewUpdateNoteHandler(store, logger)
	if err := commandBus.Register(commands.UpdateNoteCommand{}, bus.CommandHandlerFunc(
		func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			updateCmd, ok := cmd.(commands.UpdateNoteCommand)
			if !ok {
				return nil, pkgerrors.NewInternalError("invalid command type")
			}
			return updateHandler.Handle(ctx, updateCmd)
		},
	)); err != nil {
		return nil, err
	}

	deleteHandler := commands_handlers.NewDeleteNoteHandler(store, logger)
	if err := commandBus.Register(commands.DeleteNoteCommand{}, bus.CommandHandlerFunc(
		func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			deleteCmd, ok := cmd.(commands.DeleteNoteCommand)
			if !ok {
				return nil, pkgerrors.NewInternalError("invalid command type")
			}
			return nil, deleteHandler.Handle(ctx, deleteCmd)
		},
	)); err != nil {
		return nil, err
	}

	return commandBus, nil
}

// ProvideQueryBus registers the note query handlers
func ProvideQueryBus(
	store ports.NoteStore,
	tracer *observability.Tracer,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(
		querybus.LoggingMiddleware(logger),
		querybus.TracingMiddleware(tracer),
		querybus.MetricsMiddleware(metrics),
	)

	listHandler := queries_handlers.NewListNotesHandler(store, logger)
	if err := queryBus.Register(queries.ListNotesQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, query querybus.Query) (interface{}, error) {
			listQuery, ok := query.(queries.ListNotesQuery)
			if !ok {
				return nil, pkgerrors.NewInternalError("invalid query type")
			}
			return listHandler.Handle(ctx, listQuery)
		},
	)); err != nil {
		return nil, err
	}

	getHandler := queries_handlers.NewGetNoteHandler(store, logger)
	if err := queryBus.Register(queries.GetNoteQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetNoteQuery)
			if !ok {
				return nil, pkgerrors.NewInternalError("invalid query type")
			}
			return getHandler.Handle(ctx, getQuery)
		},
	)); err != nil {
		return nil, err
	}

	return queryBus, nil
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	resolver auth.IdentityResolver,
	metrics *observability.Metrics,
	cfg *config.Config,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(commandBus, queryBus, resolver, metrics, rest.Options{
		ScopeByOwner: cfg.ScopeByOwner,
		MaxBodyBytes: cfg.MaxBodyBytes,
	}, logger)
}
