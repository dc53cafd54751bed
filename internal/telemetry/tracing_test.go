package telemetry_test

import (
	"testing"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetupTracing(t *testing.T) {
	t.Run("Disabled without endpoint", func(t *testing.T) {
		// Act
		shutdown, err := telemetry.SetupTracing(t.Context(), config.Otel{ServiceName: "storefront-checkout"})

		// Assert
		require.NoError(t, err)
		require.NoError(t, shutdown(t.Context()))
		assert.ElementsMatch(t, []string{"traceparent", "tracestate", "baggage"}, otel.GetTextMapPropagator().Fields())
	})

	t.Run("Exporter configured", func(t *testing.T) {
		// Act
		shutdown, err := telemetry.SetupTracing(t.Context(), config.Otel{
			ServiceName:      "storefront-checkout",
			ExporterEndpoint: "http://127.0.0.1:4318",
			SamplerRatio:     0.5,
		})

		// Assert
		require.NoError(t, err)
		require.NotNil(t, shutdown)
		assert.NoError(t, shutdown(t.Context()))
	})
}
