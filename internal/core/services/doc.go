// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The retrieval service owns the ingest pipeline (extract, chunk, embed,
// upsert) and the module service owns generation (retrieve, prompt,
// generate, parse, translate, record).
package services
