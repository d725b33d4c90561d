package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const baseURL = "http://0.0.0.0:9234"

func main() {
	initTracer()

	client := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

	ctx := context.Background()

	var session struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}

	email := fmt.Sprintf("admin+%d@example.com", time.Now().UnixNano())

	post(ctx, client, "", "/auth/register", map[string]string{
		"name":     "Admin",
		"email":    email,
		"password": "s3cret-pass",
		"role":     "admin",
	}, &session)

	fmt.Printf("Registered\n\tID: %s\n\tEmail: %s\n\tRole: %s\n", session.User.ID, session.User.Email, session.User.Role)

	post(ctx, client, "", "/auth/login", map[string]string{
		"email":    email,
		"password": "s3cret-pass",
	}, &session)

	fmt.Printf("Logged in\n\tToken: %s...\n", session.Token[:16])

	var created struct {
		Task struct {
			ID       string `json:"id"`
			Title    string `json:"title"`
			Status   string `json:"status"`
			Priority string `json:"priority"`
		} `json:"task"`
	}

	post(ctx, client, session.Token, "/tasks", map[string]string{
		"title":       "Sleep early",
		"description": "Lights out before midnight",
		"priority":    "high",
	}, &created)

	fmt.Printf("New Task\n\tID: %s\n\tStatus: %s\n\tPriority: %s\n", created.Task.ID, created.Task.Status, created.Task.Priority)

	var advanced struct {
		Task struct {
			Status string `json:"status"`
		} `json:"task"`
	}

	post(ctx, client, session.Token, "/tasks/"+created.Task.ID+"/advance", struct{}{}, &advanced)

	fmt.Printf("Advanced Task\n\tStatus: %s\n", advanced.Task.Status)

	time.Sleep(10 * time.Second)
}

func post(ctx context.Context, client *http.Client, token, path string, body, out interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		log.Fatalf("Couldn't marshal request: %s", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+path, bytes.NewReader(data))
	if err != nil {
		log.Fatalf("Couldn't build request: %s", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := client.Do(req)
	if err != nil {
		log.Fatalf("Couldn't call %s: %s", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		log.Fatalf("Request %s failed: %s", path, res.Status)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		log.Fatalf("Couldn't decode response: %s", err)
	}
}

// initTracer initializes OpenTelemetry tracing with Jaeger and stdout
// exporters.
func initTracer() {
	jaegerEndpoint := "http://localhost:14268/api/traces"

	jaegerExporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(jaegerEndpoint)))
	if err != nil {
		log.Fatalf("Couldn't initialize jaeger exporter: %s", err)
	}

	stdoutExporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		log.Fatalf("Couldn't initialize stdout exporter: %s", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(stdoutExporter),
		sdktrace.WithBatcher(jaegerExporter),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
}
