/*
Package grid implements the sparse coordinate store and the bound tracker
that back a diagram.

The Store maps coordinates to nodes and keeps a dense sequential list of
every live node, so enumeration is O(n) without skipping holes and removal
is O(1) (swap with the last element, then pop). The Tracker keeps the
four-directional extent of the occupied region.

Neither type is safe for concurrent use.
*/
package grid
