// Package pkg provides shared ambient utilities for the fw-utils register
// and virtual-device stacks.
//
// This package contains common functionality used by both the [reg] and
// [virtual] packages:
//
//   - Structured, leveled logging via a package-level, replaceable
//     logger backed by [github.com/sirupsen/logrus]
//   - A replaceable error-report sink carrying function/file/line/message,
//     matching the callback contract expected by callers of the register
//     layer, plus a global silencing toggle for negative-path tests
//   - Sentinel error values identifying the kind of failure (argument,
//     map, runtime, virtual), so callers can use [errors.Is]
//
// # Logging
//
//	pkg.SetLogLevel(logrus.DebugLevel)
//	pkg.LogInfo(pkg.ComponentDevice, "register map installed: %d registers", 6)
//
// # Error reporting
//
// Every failure in [reg] and [virtual] is reported via [ReportError], in
// addition to being returned as an error; a failure that propagates
// through several layers may be reported by more than one of them. Tests that exercise
// negative paths can silence this without affecting the returned error:
//
//	pkg.Silence(true)
//	defer pkg.Silence(false)
package pkg
