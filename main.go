package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/webref/mcp-server/tools"
)

const (
	version     = "1.2.0"
	serverName  = "webref-mcp-server"
	description = "MCP server for web technology reference dataset validation and lookup"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("%s version %s\n", serverName, version)
		os.Exit(0)
	}

	// Set up logging to stderr (MCP uses stdout for protocol)
	log.SetOutput(os.Stderr)
	log.Printf("%s v%s starting...", serverName, version)

	// Load every language dataset before accepting connections
	if err := tools.LoadDatasets(); err != nil {
		log.Fatalf("Failed to load datasets: %v", err)
	}
	log.Printf("✓ Datasets loaded")

	// Watch the override data directory if one is configured
	if err := tools.WatchDataDir(); err != nil {
		log.Printf("Warning: dataset watcher unavailable: %v", err)
	}

	// Create MCP server
	server := createMCPServer()

	// Register all tools
	if err := registerTools(server); err != nil {
		log.Fatalf("Failed to register tools: %v", err)
	}

	log.Printf("✓ Server ready and waiting for connections")

	// Set up cleanup on shutdown
	defer func() {
		if err := tools.CloseSearch(); err != nil {
			log.Printf("Error closing search index: %v", err)
		}
		if err := tools.CloseDatasets(); err != nil {
			log.Printf("Error closing dataset watcher: %v", err)
		}
	}()

	// Run server with stdio transport
	ctx := context.Background()
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// createMCPServer initializes the MCP server
func createMCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    serverName,
			Version: version,
		},
		nil, // Default options
	)

	log.Printf("Server initialized: %s v%s", serverName, version)
	return server
}

// registerTools registers all MCP tools
func registerTools(server *mcp.Server) error {
	toolCount := 0

	// Dataset validation (1 tool)
	if err := tools.RegisterValidationTools(server); err != nil {
		return fmt.Errorf("failed to register validation tools: %w", err)
	}
	toolCount++

	// Lookup and statistics (5 tools)
	if err := tools.RegisterLookupTools(server); err != nil {
		return fmt.Errorf("failed to register lookup tools: %w", err)
	}
	toolCount += 5

	// Full-text search (1 tool)
	if err := tools.RegisterSearchTools(server); err != nil {
		log.Printf("Warning: Failed to register search tools: %v", err)
		log.Printf("Reference search will be unavailable")
	} else {
		toolCount++
	}

	// Document cross-referencing (1 tool)
	if err := tools.RegisterCrossRefTools(server); err != nil {
		return fmt.Errorf("failed to register cross-reference tools: %w", err)
	}
	toolCount++

	// Snippet syntax heuristics (1 tool)
	if err := tools.RegisterSyntaxTools(server); err != nil {
		return fmt.Errorf("failed to register syntax tools: %w", err)
	}
	toolCount++

	log.Printf("✓ All tools registered: %d tools (validation + lookup + search + crossref + syntax)", toolCount)
	return nil
}
