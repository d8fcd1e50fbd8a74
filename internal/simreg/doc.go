// Package simreg is an in-memory register-file transport for tests and
// the regctl CLI: it stands in for a real bus
// responder behind the same [github.com/js216/fw-utils/reg.ReadFn] and
// [github.com/js216/fw-utils/reg.WriteFn] callback shapes a physical
// device would use, with optional fault injection for exercising
// transport-error paths.
//
// simreg's own bookkeeping is synchronized with a mutex, entirely outside
// the [github.com/js216/fw-utils/reg] package's concurrency model. A
// [Bus] is a stand-in transport, not a device context, so its internal
// locking has no bearing on reg's single-threaded-cooperative contract.
package simreg
