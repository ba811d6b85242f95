// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

type LoggerInterface interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})

	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Fatalf(template string, args ...interface{})

	Security() SecurityLoggerInterface

	Sync() error
}

// SecurityLoggerInterface emits structured audit events for security-relevant
// state changes. Events are logged at Info level with a fixed event field so
// they can be filtered downstream.
type SecurityLoggerInterface interface {
	AuthnSuccess(subject string)
	AuthnFailure(subject string)
	AuthzFailure(subject, action string)
	SystemStartup()
	SystemShutdown()
}
