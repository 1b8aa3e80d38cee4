// Package gatesdk is a typed client for the gatehouse service. It covers the
// invite, signup and bootstrap endpoints and is what the end-to-end tests
// drive the service with.
package gatesdk
