package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/tessera/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDiagramStoreContract runs a suite of tests to verify that a DiagramStore
// implementation adheres to the defined interface contract.
// newDiagram must return a fresh diagram whose origin is a Single node.
func RunDiagramStoreContract(t *testing.T, store DiagramStore, newDiagram func() Diagram) {
	ctx := context.Background()
	id := "contract-test-diagram-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		d := newDiagram()
		_, err := d.RequestEngage(0, 0, "box")
		require.NoError(t, err)

		err = store.Save(ctx, id, d)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")

		snap := loaded.Snapshot()
		origin, ok := snap.Lookup(domain.Origin)
		require.True(t, ok)
		assert.Equal(t, domain.StateEngaged, origin.State)
		assert.Equal(t, "box", origin.Descriptor)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrDiagramNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, newDiagram()))

		err := store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrDiagramNotFound, "Load after Delete should return ErrDiagramNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		_ = store.Save(ctx, id1, newDiagram())
		_ = store.Save(ctx, id2, newDiagram())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
