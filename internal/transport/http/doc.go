// Package http provides the chi-based HTTP transport.
//
// Routes:
//
//	POST   /api/analyses                 upload a dataset, run the pipeline
//	GET    /api/analyses                 list stored analyses
//	GET    /api/analyses/{id}            full analysis document
//	GET    /api/analyses/{id}/summary    summary section
//	GET    /api/analyses/{id}/statistics statistics section
//	GET    /api/analyses/{id}/cleaned    cleaned rows (JSON or CSV)
//	DELETE /api/analyses/{id}            drop a stored analysis
//	GET    /api/healthz                  liveness probe
//	GET    /metrics                      Prometheus metrics
//	GET    /ws                           operation progress stream
//
// Handlers delegate all error rendering to the errors.ErrorHandler so
// that every failure becomes the same structured JSON shape.
package http
