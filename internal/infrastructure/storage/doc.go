// Package storage persists downloaded orders: one XML document per order on the local
// filesystem, optionally mirrored to an S3-compatible bucket.
package storage
