// Package integration contains the marketplace integration bounded context.
// It models the orders, tracking submissions and order documents exchanged with a
// marketplace order-management API, and declares the ports the application layer drives.
//
// Key concepts:
//   - Order / OrderPage: immutable snapshots returned by the orders listing endpoint
//   - AdditionalField: closed sum type for the typed key/value pairs attached to orders
//   - TrackingSubmission: carrier information pushed for an order
//   - DocumentUploadResult: body-level outcome of a document upload
//
// Design Pattern: Ports & Adapters
//   - Ports (MarketplaceAPI, OrderSink) are defined here
//   - Adapters (HTTP client, filesystem and S3 sinks) live in the infrastructure layer
package integration
