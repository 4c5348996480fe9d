// Copyright The MentorHub Authors.
// SPDX-License-Identifier: MIT

// Package service implements the business logic of the meeting service.
package service

// Service is the minimal readiness contract every service implements.
type Service interface {
	ServiceReady() bool
}

// ServiceConfig is the configuration for the Services.
type ServiceConfig struct {
	// SkipEtagValidation is a flag to skip the Etag validation - only meant for local development.
	SkipEtagValidation bool
	// EmailWorkerCount bounds the concurrency of the invitation email fan-out.
	EmailWorkerCount int
}
