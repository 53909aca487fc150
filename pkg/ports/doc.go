/*
Package ports defines the ports (interfaces) around the Tessera grid model.

These interfaces decouple the lifecycle model from the outside world, so
the same diagram can be driven by a terminal, an HTTP client or an agent,
and drawn by any renderer.

# Key Interfaces

  - Renderer: Receives synchronous notifications as the grid changes (driven).
  - Dispatcher: Accepts engage/remove requests from a UI (driving).
  - Diagram: A Dispatcher that can also describe itself.
  - DiagramStore: Holds named live diagrams for multi-diagram hosts.
  - DistributedLocker: Provides distributed locking for concurrent diagram access.
*/
package ports
