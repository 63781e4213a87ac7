package main

import (
	"context"
	"errors"
	"log"
	"time"

	"notes-backend/infrastructure/config"
	"notes-backend/infrastructure/di"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var (
	// chiLambda serves REST API (payload v1) events
	chiLambda *chiadapter.ChiLambda

	// chiLambdaV2 serves HTTP API (payload v2) events
	chiLambdaV2 *chiadapter.ChiLambdaV2

	logger = zap.NewNop()

	coldStart = true
)

// bootstrap runs once per execution environment, before the first event
func bootstrap(ctx context.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	chiRouter, ok := container.Router.Setup().(*chi.Mux)
	if !ok {
		return nil, errors.New("router handler is not a chi.Mux")
	}

	useAdapter(cfg.APIGatewayPayload, chiRouter, container.Logger)
	return cfg, nil
}

// useAdapter binds the router to the proxy adapter for the gateway's
// payload version. Only one of chiLambda and chiLambdaV2 is set.
func useAdapter(payload string, router *chi.Mux, l *zap.Logger) {
	logger = l
	chiLambda, chiLambdaV2 = nil, nil
	if payload == config.PayloadV2 {
		chiLambdaV2 = chiadapter.NewV2(router)
		return
	}
	chiLambda = chiadapter.New(router)
}

// Handler serves REST API proxy events
func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp, err := chiLambda.ProxyWithContext(ctx, req)
	resp.Headers = withLambdaHeaders(resp.Headers, req.RequestContext.RequestID)

	logResponse(req.HTTPMethod, req.Path, req.RequestContext.RequestID, resp.StatusCode)
	return resp, err
}

// HandlerV2 serves HTTP API proxy events
func HandlerV2(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	resp, err := chiLambdaV2.ProxyWithContextV2(ctx, req)
	resp.Headers = withLambdaHeaders(resp.Headers, req.RequestContext.RequestID)

	logResponse(req.RequestContext.HTTP.Method, req.RequestContext.HTTP.Path, req.RequestContext.RequestID, resp.StatusCode)
	return resp, err
}

func withLambdaHeaders(headers map[string]string, requestID string) map[string]string {
	if headers == nil {
		headers = make(map[string]string)
	}

	if coldStart {
		headers["X-Cold-Start"] = "true"
		coldStart = false
	} else {
		headers["X-Cold-Start"] = "false"
	}
	if requestID != "" {
		headers["X-Request-ID"] = requestID
	}
	return headers
}

func logResponse(method, path, requestID string, status int) {
	logger.Debug("Lambda response",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status_code", status),
	)
}

// main is the entry point for the Lambda function
func main() {
	start := time.Now()
	log.Println("Lambda cold start initiated")

	cfg, err := bootstrap(context.Background())
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	logger.Info("Lambda cold start completed",
		zap.Duration("duration", time.Since(start)),
		zap.String("payload", cfg.APIGatewayPayload),
		zap.String("table", cfg.TableName),
		zap.Bool("scopeByOwner", cfg.ScopeByOwner),
	)

	if chiLambdaV2 != nil {
		lambda.Start(HandlerV2)
		return
	}
	lambda.Start(Handler)
}
