// Package mcpserver exposes rule loading, rendering and syncing as MCP tools
// over stdio, so an editor or agent can keep rule files in step.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lewiesnyder/RulePort/internal/logging"
	"github.com/lewiesnyder/RulePort/internal/model"
	"github.com/lewiesnyder/RulePort/internal/planner"
	"github.com/lewiesnyder/RulePort/internal/source"
	"github.com/lewiesnyder/RulePort/internal/sync"
	"github.com/lewiesnyder/RulePort/internal/target"
)

// ConventionsURI names the resource describing every tool's file layout.
const ConventionsURI = "ruleport://conventions"

// Options configures the server. Source and Targets are defaults that each
// tool call may override.
type Options struct {
	Paths   model.PathConfig
	Source  model.Tool
	Targets []model.Tool
	Version string
	FS      sync.FileSystem
	Logger  *slog.Logger
}

// Server wraps the MCP server with ruleport tools.
type Server struct {
	mcp  *server.MCPServer
	opts Options
}

// New creates a server with all tools and resources registered.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	s := &Server{opts: opts}

	s.mcp = server.NewMCPServer(
		"ruleport",
		opts.Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	sourceArg := mcp.WithString("source",
		mcp.Description("Tool whose rules are read: "+strings.Join(model.ToolNames(), ", ")+". Defaults to the configured source."))

	s.mcp.AddTool(mcp.NewTool("list_rules",
		mcp.WithDescription("Load the source tool's rules and return them as JSON, with any load warnings."),
		sourceArg,
	), s.listRules)

	s.mcp.AddTool(mcp.NewTool("render_rules",
		mcp.WithDescription("Render the source rules for one target tool without writing. "+
			"Returns the planned files and their exact content."),
		sourceArg,
		mcp.WithString("target", mcp.Required(), mcp.Description("Tool to render for")),
	), s.renderRules)

	s.mcp.AddTool(mcp.NewTool("check_sync",
		mcp.WithDescription("Report which target files would be created or modified by a sync. Writes nothing."),
		sourceArg,
		mcp.WithString("targets", mcp.Description("Comma separated target tools. Defaults to the configured targets.")),
	), s.checkSync)

	s.mcp.AddTool(mcp.NewTool("sync_rules",
		mcp.WithDescription("Convert the source rules and write every target's files."),
		sourceArg,
		mcp.WithString("targets", mcp.Description("Comma separated target tools. Defaults to the configured targets.")),
	), s.syncRules)

	s.mcp.AddResource(
		mcp.NewResource(ConventionsURI, "Rule File Conventions",
			mcp.WithResourceDescription("Where each assistant keeps its rules and which frontmatter fields carry scope."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readConventions,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) source(req mcp.CallToolRequest) (model.Tool, error) {
	name := req.GetString("source", "")
	if name == "" {
		return s.opts.Source, nil
	}
	return model.ParseTool(name)
}

func (s *Server) targets(req mcp.CallToolRequest) ([]model.Tool, error) {
	raw := req.GetString("targets", "")
	if strings.TrimSpace(raw) == "" {
		return s.opts.Targets, nil
	}
	return model.ParseTools(strings.Split(raw, ","))
}

func (s *Server) syncOptions(req mcp.CallToolRequest) (sync.Options, error) {
	src, err := s.source(req)
	if err != nil {
		return sync.Options{}, err
	}
	targets, err := s.targets(req)
	if err != nil {
		return sync.Options{}, err
	}
	return sync.Options{
		Source:  src,
		Targets: targets,
		Paths:   s.opts.Paths,
		FS:      s.opts.FS,
		Logger:  s.opts.Logger,
	}, nil
}

type rulesPayload struct {
	Source   model.Tool   `json:"source"`
	Rules    []model.Rule `json:"rules"`
	Warnings []string     `json:"warnings,omitempty"`
}

func (s *Server) listRules(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	src, err := s.source(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	loaded, err := s.load(src)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(rulesPayload{Source: src, Rules: loaded.Rules, Warnings: loaded.Warnings})
}

func (s *Server) renderRules(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("target")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tool, err := model.ParseTool(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	src, err := s.source(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	loaded, err := s.load(src)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rendered, err := target.Render(tool, loaded.Rules, s.opts.Paths)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rendered = planner.Aggregate(model.RenderResult{Warnings: loaded.Warnings}, rendered)
	for i := range rendered.Writes {
		rendered.Writes[i].Path = s.opts.Paths.Rel(rendered.Writes[i].Path)
	}
	return jsonResult(rendered)
}

type checkPayload struct {
	InSync   bool     `json:"inSync"`
	Created  []string `json:"created"`
	Modified []string `json:"modified"`
	Failed   []string `json:"failed,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (s *Server) checkSync(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts, err := s.syncOptions(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := sync.Check(ctx, opts)
	if err != nil && !errors.Is(err, sync.ErrDrift) {
		return mcp.NewToolResultError(err.Error()), nil
	}

	drift := res.Drift()
	payload := checkPayload{
		InSync:   !drift.HasDifferences,
		Created:  s.rel(drift.Created),
		Modified: s.rel(drift.Modified),
		Warnings: res.Warnings(),
	}
	for _, tr := range res.Failed() {
		payload.Failed = append(payload.Failed, fmt.Sprintf("%s: %v", tr.Tool, tr.Err))
	}
	return jsonResult(payload)
}

func (s *Server) syncRules(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts, err := s.syncOptions(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := sync.Sync(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(res.Rules) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No rules found in %s", s.opts.Paths.Rel(res.SourceDir))), nil
	}

	var sb strings.Builder
	for _, tr := range res.Targets {
		if tr.Success() {
			sb.WriteString(fmt.Sprintf("%s: %d file(s), %d written\n", tr.Tool.DisplayName(), len(tr.Writes), tr.Written))
		}
	}
	for _, w := range res.Warnings() {
		sb.WriteString("warning: " + w + "\n")
	}
	sb.WriteString(res.Summary())

	if len(res.Failed()) > 0 {
		return mcp.NewToolResultError(sb.String()), nil
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) readConventions(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ConventionsURI,
			MIMEType: "text/markdown",
			Text:     Conventions(),
		},
	}, nil
}

func (s *Server) load(src model.Tool) (*source.LoadResult, error) {
	if s.opts.FS != nil {
		return source.LoadRulesFS(s.opts.FS, src, s.opts.Paths.RulesDir(src))
	}
	return source.LoadRules(src, s.opts.Paths.RulesDir(src))
}

func (s *Server) rel(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = s.opts.Paths.Rel(p)
	}
	return out
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
