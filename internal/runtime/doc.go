/*
Package runtime implements the node lifecycle model of a diagram.

A Model owns a grid.Store and a grid.Tracker and exposes the three
operations that change them:

  - Create adds a Single node at an empty coordinate, growing the bound first.
  - Engage turns a Single node into an Engaged one and fans out four new
    Single neighbors.
  - Remove deletes an Engaged node together with the attachment points that
    only existed to serve it, keeping any gateway into the rest of the diagram.

A Model is not safe for concurrent use. Hosts that share a model between
goroutines must serialize access (see pkg/session).
*/
package runtime
