/*
Package observability turns diagram lifecycle events into Prometheus metrics
and structured log records.

Both are delivered as domain.LifecycleHooks, so they can be combined with
LifecycleHooks.Merge and handed to tessera.WithLifecycleHooks.
*/
package observability
