// Package mcp exposes document retrieval over the Model Context Protocol
// so AI assistants can query the index directly.
package mcp

import (
	"net/http"

	"github.com/docuchat/api/internal/rag"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is the MCP server version.
const Version = "1.0.0"

type Server struct {
	ragService rag.Service
	server     *mcp.Server
}

func NewServer(ragService rag.Service) *Server {
	impl := &mcp.Implementation{
		Name:    "docuchat",
		Version: Version,
	}

	s := &Server{
		ragService: ragService,
		server:     mcp.NewServer(impl, nil),
	}

	s.registerTools()

	return s
}

// HTTPHandler returns a streamable HTTP handler suitable for mounting
// on the main router.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
}
