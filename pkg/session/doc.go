/*
Package session serializes access to named diagrams.

A diagram engine is single-threaded. Manager gives concurrent hosts (the HTTP
server, the MCP server) one mutex per diagram ID, optionally backed by a
ports.DistributedLocker when several replicas share the same IDs. Every
operation runs inside an OpenTelemetry span taken from the global tracer
provider, which is a no-op unless the host installs one.
*/
package session
