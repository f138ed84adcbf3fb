// Package service provides reusable gateway operations over an
// omnifs.Registry: backend administration, health checks and routed file
// operations including the cross-backend copy bridge.
//
// This package is intended for embedding the gateway into other programs
// without going through the MCP transport.
package service
