package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/tessera"
	"github.com/aretw0/tessera/pkg/adapters/memory"
	"github.com/aretw0/tessera/pkg/domain"
	"github.com/aretw0/tessera/pkg/ports"
	"github.com/aretw0/tessera/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *session.Manager) {
	t.Helper()
	mgr := session.NewManager(memory.NewStore(), func(id string) ports.Diagram {
		return tessera.New(tessera.WithName(id))
	})
	return NewServer(mgr), mgr
}

func callTool(t *testing.T, s *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.MCPServer().GetTool(name)
	require.NotNil(t, tool, "tool %s not registered", name)

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func TestServer_EngageAndRemove(t *testing.T) {
	s, mgr := newTestServer(t)
	ctx := context.Background()

	res := callTool(t, s, "engage_node", map[string]any{"x": 0, "y": 0, "descriptor": "box"})
	require.False(t, res.IsError)
	cs, ok := res.StructuredContent.(domain.ChangeSet)
	require.True(t, ok)
	assert.Len(t, cs.Engaged, 1)
	assert.Len(t, cs.Created, 4)

	snap, err := mgr.Snapshot(ctx, DefaultDiagram)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Engaged)
	assert.Equal(t, 4, snap.Single)

	res = callTool(t, s, "remove_node", map[string]any{"x": 0, "y": 0})
	require.False(t, res.IsError)
	cs, ok = res.StructuredContent.(domain.ChangeSet)
	require.True(t, ok)
	assert.Len(t, cs.Removed, 5)
	assert.Len(t, cs.Created, 1)

	snap, err = mgr.Snapshot(ctx, DefaultDiagram)
	require.NoError(t, err)
	assert.Len(t, snap.Nodes, 1)
}

func TestServer_NamedDiagram(t *testing.T) {
	s, mgr := newTestServer(t)

	res := callTool(t, s, "engage_node", map[string]any{"diagram": "other", "x": 0, "y": 0, "descriptor": "box"})
	require.False(t, res.IsError)

	ids, err := mgr.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"other"}, ids)
}

func TestServer_ToolErrors(t *testing.T) {
	s, _ := newTestServer(t)

	res := callTool(t, s, "engage_node", map[string]any{"x": 5, "y": 5, "descriptor": "box"})
	assert.True(t, res.IsError)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, domain.ErrInvalidTransition.Error())

	res = callTool(t, s, "remove_node", map[string]any{"diagram": "missing", "x": 0, "y": 0})
	assert.True(t, res.IsError)
}

func TestServer_GetDiagram(t *testing.T) {
	s, _ := newTestServer(t)

	res := callTool(t, s, "get_diagram", map[string]any{})
	require.False(t, res.IsError)
	snap, ok := res.StructuredContent.(domain.Snapshot)
	require.True(t, ok)
	assert.Equal(t, DefaultDiagram, snap.Name)
	require.Len(t, snap.Nodes, 1)
	assert.Equal(t, domain.StateSingle, snap.Nodes[0].State)
}

func TestServer_ReadResources(t *testing.T) {
	s, mgr := newTestServer(t)
	ctx := context.Background()

	_, err := mgr.Engage(ctx, "plan", 0, 0, "box")
	require.NoError(t, err)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = uriPrefix + "plan"
	contents, err := s.readDiagram(ctx, req)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "application/json", text.MIMEType)

	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal([]byte(text.Text), &snap))
	assert.Equal(t, 1, snap.Engaged)
	assert.Equal(t, 4, snap.Single)

	req.Params.URI = uriPrefix + "plan/mermaid"
	contents, err = s.readMermaid(ctx, req)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok = contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Contains(t, text.Text, `n_0_0["box"]`)

	req.Params.URI = uriPrefix + "nope/mermaid"
	_, err = s.readMermaid(ctx, req)
	assert.ErrorIs(t, err, domain.ErrDiagramNotFound)
}
