package main

import (
	"context"
	"flag"
	"log"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/factorykit/planner/pkg/application/services"
	"github.com/factorykit/planner/pkg/domain/repositories"
	"github.com/factorykit/planner/pkg/infrastructure/repositories/csv"
	"github.com/factorykit/planner/pkg/infrastructure/repositories/memory"
	"github.com/factorykit/planner/pkg/infrastructure/repositories/postgres"
	"github.com/factorykit/planner/pkg/interfaces/rest"
)

const serviceName = "planner"

func main() {
	var (
		addr          = flag.String("addr", getEnv("PLANNER_ADDR", ":8080"), "Listen address")
		databaseURL   = flag.String("database-url", getEnv("DATABASE_URL", ""), "Postgres DSN; empty runs the in-memory store")
		seedDir       = flag.String("seed", getEnv("PLANNER_SEED_DIR", ""), "Directory with materials.csv/products.csv/bom.csv to preload")
		enableTracing = flag.Bool("tracing", getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "") != "", "Enable OTLP trace export")
	)
	flag.Parse()

	ctx := context.Background()

	var tracer trace.Tracer
	if *enableTracing {
		tp, err := initTracer(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize tracer: %v", err)
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down tracer: %v", err)
			}
		}()
		tracer = tp.Tracer(serviceName)
	}

	var (
		materials repositories.MaterialRepository
		products  repositories.ProductRepository
		source    repositories.SnapshotSource
	)
	if *databaseURL != "" {
		pool, err := postgres.Connect(ctx, *databaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		store := postgres.NewStore(pool)
		materials, products, source = store, store, store
		log.Println("Using Postgres catalog store")
	} else {
		store := memory.NewStore()
		materials, products, source = store, store, store
		log.Println("Using in-memory catalog store")
	}

	if *seedDir != "" {
		if err := csv.NewLoader().Seed(ctx, *seedDir, materials, products); err != nil {
			log.Fatalf("Failed to seed catalog from %s: %v", *seedDir, err)
		}
		log.Printf("Seeded catalog from %s", *seedDir)
	}

	catalog := services.NewCatalogService(materials, products)
	suggestion := services.NewSuggestionService(source, tracer)

	router := rest.NewRouter(rest.NewHandler(catalog, suggestion), rest.RouterConfig{
		ServiceName:   serviceName,
		EnableTracing: *enableTracing,
	})

	log.Printf("Planner API listening on %s", *addr)
	if err := router.Run(*addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func initTracer(ctx context.Context) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(getEnv("SERVICE_NAME", serviceName)),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	otel.SetTracerProvider(tp)

	return tp, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
