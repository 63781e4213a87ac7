package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCloudWatch struct {
	inputs []*cloudwatch.PutMetricDataInput
	err    error
}

func (f *fakeCloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.inputs = append(f.inputs, params)
	return &cloudwatch.PutMetricDataOutput{}, f.err
}

func dimensions(t *testing.T, in *cloudwatch.PutMetricDataInput) map[string]string {
	t.Helper()
	require.NotEmpty(t, in.MetricData)
	dims := map[string]string{}
	for _, d := range in.MetricData[0].Dimensions {
		dims[aws.ToString(d.Name)] = aws.ToString(d.Value)
	}
	return dims
}

func TestMetrics_RecordCommandExecution(t *testing.T) {
	cw := &fakeCloudWatch{}
	m := NewMetrics("Notes/test", cw, zap.NewNop())

	m.RecordCommandExecution(context.Background(), "CreateNoteCommand", 12*time.Millisecond, nil)
	m.RecordQueryExecution(context.Background(), "ListNotesQuery", time.Millisecond, errors.New("boom"))

	require.Len(t, cw.inputs, 2)
	assert.Equal(t, "Notes/test", aws.ToString(cw.inputs[0].Namespace))
	assert.Equal(t, "CommandExecution", aws.ToString(cw.inputs[0].MetricData[0].MetricName))
	assert.Equal(t, 12.0, aws.ToFloat64(cw.inputs[0].MetricData[0].Value))
	assert.Equal(t, map[string]string{"CommandName": "CreateNoteCommand", "Status": "success"}, dimensions(t, cw.inputs[0]))
	assert.Equal(t, "QueryCount", aws.ToString(cw.inputs[1].MetricData[1].MetricName))
	assert.Equal(t, map[string]string{"QueryName": "ListNotesQuery", "Status": "failure"}, dimensions(t, cw.inputs[1]))
}

func TestMetrics_RecordRequest(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusOK, "2xx"},
		{http.StatusNotFound, "4xx"},
		{http.StatusInternalServerError, "5xx"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			cw := &fakeCloudWatch{}
			m := NewMetrics("Notes/test", cw, zap.NewNop())

			m.RecordRequest(context.Background(), "GET /notes/{id}", tt.status, time.Millisecond)

			require.Len(t, cw.inputs, 1)
			assert.Equal(t, map[string]string{"Route": "GET /notes/{id}", "StatusClass": tt.want}, dimensions(t, cw.inputs[0]))
		})
	}
}

func TestMetrics_NoClientIsNoop(t *testing.T) {
	var nilMetrics *Metrics

	assert.NotPanics(t, func() {
		nilMetrics.RecordRequest(context.Background(), "unmatched", http.StatusNotFound, time.Millisecond)
		NewMetrics("Notes/test", nil, zap.NewNop()).RecordCommandExecution(context.Background(), "X", time.Millisecond, nil)
	})
}

func TestMetrics_PutFailureIsSwallowed(t *testing.T) {
	cw := &fakeCloudWatch{err: errors.New("throttled")}
	m := NewMetrics("Notes/test", cw, zap.NewNop())

	assert.NotPanics(t, func() {
		m.RecordQueryExecution(context.Background(), "GetNoteQuery", time.Millisecond, nil)
	})
	assert.Len(t, cw.inputs, 1)
}

func TestTracer_Disabled(t *testing.T) {
	tracer := NewTracer("notes-test", false)
	called := false
	want := errors.New("boom")

	err := tracer.TraceFunction(context.Background(), "op", func(ctx context.Context) error {
		called = true
		return want
	})

	assert.True(t, called)
	assert.ErrorIs(t, err, want)
	assert.False(t, tracer.Enabled())

	cfg := aws.Config{}
	tracer.InstrumentAWS(&cfg)
	assert.Empty(t, cfg.APIOptions)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	w := httptest.NewRecorder()
	tracer.Handler(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notes", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestTracer_EnabledWithoutSegment(t *testing.T) {
	tracer := NewTracer("notes-test", true)

	cfg := aws.Config{}
	tracer.InstrumentAWS(&cfg)
	assert.NotEmpty(t, cfg.APIOptions)
	assert.NotPanics(t, func() {
		_ = tracer.TraceFunction(context.Background(), "op", func(ctx context.Context) error { return nil })
	})
}
