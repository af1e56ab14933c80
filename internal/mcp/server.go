// Package mcp exposes the audit pipeline as MCP tools so interactive
// frontends can drive runs without shelling out to the CLI.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/joescharf/rubriq/internal/audit"
	"github.com/joescharf/rubriq/internal/engine"
	"github.com/joescharf/rubriq/internal/models"
	"github.com/joescharf/rubriq/internal/normalize"
	"github.com/joescharf/rubriq/internal/prompt"
)

// EngineFactory resolves credentials and constructs the reasoning engine.
// It runs per tool call so credential problems surface at the boundary
// call, never earlier.
type EngineFactory func(ctx context.Context) (engine.Engine, error)

// Server wraps the audit pipeline and exposes it as MCP tools.
type Server struct {
	newEngine EngineFactory
}

// NewServer creates the MCP server wrapper.
func NewServer(factory EngineFactory) *Server {
	return &Server{newEngine: factory}
}

// MCPServer returns a configured mcp-go server with all tools registered.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer("rubriq", "1.0.0", server.WithToolCapabilities(true))

	srv.AddTool(s.auditRubricsTool())
	srv.AddTool(s.auditRatingsTool())
	srv.AddTool(s.compilePromptTool())

	return srv
}

// ServeStdio starts the stdio transport, blocking until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := s.MCPServer()
	stdioServer := server.NewStdioServer(srv)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

// ---------------------------------------------------------------------------
// Tool definitions and handlers
// ---------------------------------------------------------------------------

// rubriq_audit_rubrics
func (s *Server) auditRubricsTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("rubriq_audit_rubrics",
		mcp.WithDescription("Audit rubric quality against PR evidence. Sends the rubric set to the reasoning engine and returns the reconciled per-rubric verdicts as JSON."),
		mcp.WithString("rubrics_json", mcp.Required(), mcp.Description("JSON array of rubric objects")),
		mcp.WithString("repo_description", mcp.Description("Free-text repository description")),
		mcp.WithString("pr_diff", mcp.Description("PR diff or summary text")),
		mcp.WithString("shape", mcp.Description("Input shape: 'native' (default) or 'annotations'")),
	)
	return tool, s.handleAuditRubrics
}

func (s *Server) handleAuditRubrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rubricsJSON, err := request.RequireString("rubrics_json")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: rubrics_json"), nil
	}

	rubrics, err := normalize.ParseRubrics([]byte(rubricsJSON), shapeParam(request))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid rubrics: %v", err)), nil
	}
	evidence := evidenceParams(request)

	eng, err := s.newEngine(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("engine unavailable: %v", err)), nil
	}

	run, err := audit.NewRunner(eng).Rubrics(ctx, evidence, rubrics)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("audit failed: %v", err)), nil
	}
	return marshalResult(run)
}

// rubriq_audit_ratings
func (s *Server) auditRatingsTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("rubriq_audit_ratings",
		mcp.WithDescription("Audit rubric ratings against PR evidence. Verifies grounding, consistency, and clarity for every (response, rubric) pair and returns the reconciled verdicts as JSON."),
		mcp.WithString("ratings_json", mcp.Required(), mcp.Description("JSON object mapping response ids to rubric-id -> rating tuples")),
		mcp.WithString("rubrics_json", mcp.Description("JSON array of rubric objects, included as definitions for categorization checks")),
		mcp.WithString("repo_description", mcp.Description("Free-text repository description")),
		mcp.WithString("pr_diff", mcp.Description("PR diff or summary text")),
		mcp.WithString("response_summary", mcp.Description("Summary of the response being rated")),
		mcp.WithString("shape", mcp.Description("Rubric input shape: 'native' (default) or 'annotations'")),
	)
	return tool, s.handleAuditRatings
}

func (s *Server) handleAuditRatings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ratingsJSON, err := request.RequireString("ratings_json")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: ratings_json"), nil
	}

	var ratings models.RatingSet
	if err := json.Unmarshal([]byte(ratingsJSON), &ratings); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid ratings: %v", err)), nil
	}

	rubrics, err := rubricsParam(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid rubrics: %v", err)), nil
	}
	evidence := evidenceParams(request)
	evidence.ResponseSummary = request.GetString("response_summary", "")

	eng, err := s.newEngine(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("engine unavailable: %v", err)), nil
	}

	run, err := audit.NewRunner(eng).Ratings(ctx, evidence, ratings, rubrics)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("audit failed: %v", err)), nil
	}
	return marshalResult(run)
}

// rubriq_compile_prompt
func (s *Server) compilePromptTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("rubriq_compile_prompt",
		mcp.WithDescription("Compile the audit instruction document without calling the reasoning engine. Returns the system and user messages that a live run would send."),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Audit kind: 'rubrics' or 'ratings'")),
		mcp.WithString("rubrics_json", mcp.Description("JSON array of rubric objects")),
		mcp.WithString("ratings_json", mcp.Description("JSON object mapping response ids to rubric-id -> rating tuples")),
		mcp.WithString("repo_description", mcp.Description("Free-text repository description")),
		mcp.WithString("pr_diff", mcp.Description("PR diff or summary text")),
		mcp.WithString("response_summary", mcp.Description("Summary of the response being rated")),
		mcp.WithString("shape", mcp.Description("Rubric input shape: 'native' (default) or 'annotations'")),
	)
	return tool, s.handleCompilePrompt
}

func (s *Server) handleCompilePrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := request.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: kind"), nil
	}

	rubrics, err := rubricsParam(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid rubrics: %v", err)), nil
	}
	evidence := evidenceParams(request)

	var doc prompt.Document
	switch kind {
	case "rubrics":
		doc = prompt.CompileRubricAudit(evidence, rubrics)
	case "ratings":
		var ratings models.RatingSet
		if raw := request.GetString("ratings_json", ""); raw != "" {
			if err := json.Unmarshal([]byte(raw), &ratings); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid ratings: %v", err)), nil
			}
		}
		evidence.ResponseSummary = request.GetString("response_summary", "")
		doc = prompt.CompileRatingAudit(evidence, ratings, rubrics)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind: %s", kind)), nil
	}

	return marshalResult(map[string]string{
		"system": doc.System,
		"user":   doc.User,
	})
}

// ---------------------------------------------------------------------------
// Shared parameter helpers
// ---------------------------------------------------------------------------

func shapeParam(request mcp.CallToolRequest) normalize.Shape {
	if request.GetString("shape", "native") == "annotations" {
		return normalize.ShapeAnnotations
	}
	return normalize.ShapeNative
}

func evidenceParams(request mcp.CallToolRequest) models.EvidenceContext {
	return models.EvidenceContext{
		RepoDescription: request.GetString("repo_description", ""),
		PRDiff:          request.GetString("pr_diff", ""),
	}
}

func rubricsParam(request mcp.CallToolRequest) ([]models.Rubric, error) {
	raw := request.GetString("rubrics_json", "")
	if raw == "" {
		return nil, nil
	}
	return normalize.ParseRubrics([]byte(raw), shapeParam(request))
}

func marshalResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
