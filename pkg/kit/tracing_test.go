package kit_test

import (
	"context"
	"testing"

	"CourseCatalog/pkg/kit"
)

func TestSetupTracing_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("CATALOG_OTEL_ENDPOINT", "")
	t.Setenv("CATALOG_OTEL_ENABLED", "")

	shutdown, err := kit.SetupTracing(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupTracing_NoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("CATALOG_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("CATALOG_OTEL_ENABLED", "false")

	shutdown, err := kit.SetupTracing(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupTracing_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address, so no actual export happens.
	t.Setenv("CATALOG_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("CATALOG_OTEL_ENABLED", "")

	shutdown, err := kit.SetupTracing(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Shutdown should flush cleanly even though the endpoint is unreachable.
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}
