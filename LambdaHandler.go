package main

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/reaandrew/rewritestats/metrics"
	"github.com/reaandrew/rewritestats/parsers"
	log "github.com/sirupsen/logrus"
)

// LambdaRequest represents the expected JSON structure in the request body.
// Both logs are carried inline; the caller concatenates the per-function
// build outputs before invoking the function.
type LambdaRequest struct {
	PointwiseLog  string `json:"pointwise_log"`
	UnmodifiedLog string `json:"unmodified_log"`
	Strict        bool   `json:"strict"`
}

// Handler is the Lambda function handler
func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var lambdaReq LambdaRequest
	if err := json.Unmarshal([]byte(request.Body), &lambdaReq); err != nil {
		log.Printf("Error parsing request body: %v", err)
		return toAPIGatewayResponse(400, `{"error": "Invalid JSON format."}`), nil
	}

	if lambdaReq.PointwiseLog == "" || lambdaReq.UnmodifiedLog == "" {
		errMsg := "Both 'pointwise_log' and 'unmodified_log' fields are required in the JSON request."
		log.Println(errMsg)
		errorBody, _ := json.Marshal(map[string]string{"error": errMsg})
		return toAPIGatewayResponse(400, string(errorBody)), nil
	}

	summaryJSON, err := ComputeMetrics(lambdaReq.PointwiseLog, lambdaReq.UnmodifiedLog, lambdaReq.Strict)
	if err != nil {
		log.Printf("Error computing metrics: %v", err)
		errorBody, _ := json.Marshal(map[string]string{"error": err.Error()})
		return toAPIGatewayResponse(500, string(errorBody)), nil
	}

	return toAPIGatewayResponse(200, summaryJSON), nil
}

// toAPIGatewayResponse converts a status and body to events.APIGatewayProxyResponse
func toAPIGatewayResponse(statusCode int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      statusCode,
		Headers:         map[string]string{"Content-Type": "application/json"},
		Body:            body,
		IsBase64Encoded: false,
	}
}

// ComputeMetrics parses both logs and returns the run summary as JSON.
func ComputeMetrics(pointwiseLog string, unmodifiedLog string, strict bool) (string, error) {
	parser, err := parsers.NewBuildLogParser(nil, nil)
	if err != nil {
		return "", err
	}

	pointwise, err := parser.Parse(strings.NewReader(pointwiseLog))
	if err != nil {
		return "", err
	}
	unmodified, err := parser.Parse(strings.NewReader(unmodifiedLog))
	if err != nil {
		return "", err
	}

	summary, err := metrics.Aggregate(pointwise, unmodified, metrics.Options{Strict: strict})
	if err != nil {
		return "", err
	}

	summaryBytes, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", err
	}
	return string(summaryBytes), nil
}
