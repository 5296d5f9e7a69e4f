// Package api defines the request and response messages of the walletwise
// RPC services. Messages travel as JSON over the Connect protocol; the
// handlers and clients live in package apiconnect.
//
// Money is carried as decimal strings ("12.50") and never as floats.
// Timestamps use the well-known protobuf Timestamp type.
package api
