// Package testutil holds in-memory stand-ins for the MySQL stores and the
// event publisher, plus a manual clock, so services and handlers can be
// exercised without a database or broker.
package testutil
