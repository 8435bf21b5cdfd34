package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/reaandrew/rewritestats/core"
	"github.com/stretchr/testify/assert"
)

func TestHandlerRejectsInvalidJson(t *testing.T) {
	response, err := Handler(context.Background(), events.APIGatewayProxyRequest{Body: "not json"})
	assert.Nil(t, err)
	assert.Equal(t, 400, response.StatusCode)
}

func TestHandlerRequiresBothLogs(t *testing.T) {
	body, _ := json.Marshal(LambdaRequest{PointwiseLog: "got 0 errors for foo"})
	response, err := Handler(context.Background(), events.APIGatewayProxyRequest{Body: string(body)})
	assert.Nil(t, err)
	assert.Equal(t, 400, response.StatusCode)
}

func TestHandlerComputesSummary(t *testing.T) {
	body, _ := json.Marshal(LambdaRequest{
		PointwiseLog:  "got 0 errors for foo\ngot 2 errors for bar\n",
		UnmodifiedLog: "got 1 errors for foo\ngot 0 errors for bar\n",
	})
	response, err := Handler(context.Background(), events.APIGatewayProxyRequest{Body: string(body)})
	assert.Nil(t, err)
	assert.Equal(t, 200, response.StatusCode)

	var summary core.Summary
	assert.Nil(t, json.Unmarshal([]byte(response.Body), &summary))
	assert.Equal(t, 2, summary.TotalFunctions)
	assert.Equal(t, 1, summary.PointwisePassed)
	assert.Equal(t, []string{"foo"}, summary.Improved)
	assert.Equal(t, []string{"bar"}, summary.Broke)
}

func TestHandlerReportsMismatchedLogs(t *testing.T) {
	body, _ := json.Marshal(LambdaRequest{
		PointwiseLog:  "got 0 errors for foo\ngot 0 errors for bar\n",
		UnmodifiedLog: "got 0 errors for foo\n",
	})
	response, err := Handler(context.Background(), events.APIGatewayProxyRequest{Body: string(body)})
	assert.Nil(t, err)
	assert.Equal(t, 500, response.StatusCode)
	assert.Contains(t, response.Body, "report size mismatch")
}

func TestComputeMetricsDuplicateEntryFails(t *testing.T) {
	_, err := ComputeMetrics("got 0 errors for foo\ngot 1 errors for foo\n", "got 0 errors for foo\n", false)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "duplicate entry")
}
