// Package backend provides the YiBu hashtag trending API server.

// This package contains the main application entry point. The actual API
// documentation is organized into subpackages:

// - internal/handlers: HTTP request handlers for all API endpoints
// - internal/hashtag: Usage tracking, trending scores, and window rollover
// - internal/models: Data models and database schemas
// - internal/database: Database connection and migrations
// - internal/cache: Redis caching for trending queries
// - internal/metrics: Prometheus metrics
// - internal/middleware: HTTP middleware (request IDs, logging, metrics)

// See the individual package documentation for detailed API reference.
package backend
