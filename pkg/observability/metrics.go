package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// CloudWatchAPI is the part of the CloudWatch client used for metrics
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Metrics handles application metrics and monitoring.
// A nil *Metrics or one without a client records nothing.
type Metrics struct {
	namespace string
	client    CloudWatchAPI
	logger    *zap.Logger
}

// NewMetrics creates a new metrics instance
func NewMetrics(namespace string, client CloudWatchAPI, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

// RecordCommandExecution records metrics for command execution
func (m *Metrics) RecordCommandExecution(ctx context.Context, commandName string, duration time.Duration, err error) {
	m.record(ctx, "Command", "CommandName", commandName, duration, err)
}

// RecordQueryExecution records metrics for query execution
func (m *Metrics) RecordQueryExecution(ctx context.Context, queryName string, duration time.Duration, err error) {
	m.record(ctx, "Query", "QueryName", queryName, duration, err)
}

// RecordRequest records one HTTP request by route pattern and status
func (m *Metrics) RecordRequest(ctx context.Context, route string, status int, duration time.Duration) {
	if m == nil || m.client == nil {
		return
	}

	dims := []types.Dimension{
		{Name: aws.String("Route"), Value: aws.String(route)},
		{Name: aws.String("StatusClass"), Value: aws.String(statusClass(status))},
	}
	now := time.Now()
	m.put(ctx, []types.MetricDatum{
		{
			MetricName: aws.String("RequestLatency"),
			Dimensions: dims,
			Value:      aws.Float64(float64(duration.Milliseconds())),
			Unit:       types.StandardUnitMilliseconds,
			Timestamp:  aws.Time(now),
		},
		{
			MetricName: aws.String("RequestCount"),
			Dimensions: dims,
			Value:      aws.Float64(1),
			Unit:       types.StandardUnitCount,
			Timestamp:  aws.Time(now),
		},
	})
}

func (m *Metrics) record(ctx context.Context, kind, dimension, name string, duration time.Duration, err error) {
	if m == nil || m.client == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
	}

	dims := []types.Dimension{
		{Name: aws.String(dimension), Value: aws.String(name)},
		{Name: aws.String("Status"), Value: aws.String(status)},
	}
	now := time.Now()
	m.put(ctx, []types.MetricDatum{
		{
			MetricName: aws.String(kind + "Execution"),
			Dimensions: dims,
			Value:      aws.Float64(float64(duration.Milliseconds())),
			Unit:       types.StandardUnitMilliseconds,
			Timestamp:  aws.Time(now),
		},
		{
			MetricName: aws.String(kind + "Count"),
			Dimensions: dims,
			Value:      aws.Float64(1),
			Unit:       types.StandardUnitCount,
			Timestamp:  aws.Time(now),
		},
	})
}

// put sends metric data; failures are logged and never surface to the caller
func (m *Metrics) put(ctx context.Context, data []types.MetricDatum) {
	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: data,
	})
	if err != nil && m.logger != nil {
		m.logger.Warn("Failed to put metric data", zap.String("namespace", m.namespace), zap.Error(err))
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	default:
		return "2xx"
	}
}
