/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/josephgoksu/monadgen/internal/generation"
	"github.com/josephgoksu/monadgen/internal/generators"
	"github.com/josephgoksu/monadgen/internal/logger"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI tool integration",
	Long: `Start a Model Context Protocol (MCP) server so AI assistants can list and
run monadgen generators.

The MCP server runs over stdin/stdout and provides tools for:
- Listing generators
- Running a generator and saving its output
- Listing stored outputs

Example:
  monadgen mcp

The server will run until the client disconnects.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCPServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// GenerateParams are the arguments of the generate tool.
type GenerateParams struct {
	GeneratorID      string `json:"generator_id" mcp:"generator id, see list_generators"`
	NumItems         int    `json:"num_items,omitempty" mcp:"number of items for list generators"`
	Model            string `json:"model,omitempty" mcp:"model id or alias"`
	StructureMode    string `json:"structure_mode,omitempty" mcp:"twitter_wizard structure: diverse or legacy"`
	Topic            string `json:"topic,omitempty" mcp:"topic for substack_about and substack_article"`
	DemographicLabel string `json:"demographic_label,omitempty" mcp:"stored demographic label for substack_article and substack_about"`
	StyleName        string `json:"style_name,omitempty" mcp:"stored writing style name for substack_article and substack_about"`
	WordCount        string `json:"word_count,omitempty" mcp:"article length: short, medium or long"`
	Length           string `json:"length,omitempty" mcp:"about page length: short, medium or long"`
}

// options maps the tool arguments onto generator options, skipping zero values.
func (p GenerateParams) options() generation.Options {
	opts := generation.Options{}
	if p.NumItems > 0 {
		opts[generation.OptNumItems] = p.NumItems
	}
	for key, v := range map[string]string{
		generation.OptModel:         p.Model,
		generation.OptStructureMode: p.StructureMode,
		generation.OptTopic:         p.Topic,
		generation.OptDemographic:   p.DemographicLabel,
		generation.OptStyle:         p.StyleName,
		generation.OptWordCount:     p.WordCount,
		generation.OptLength:        p.Length,
	} {
		if strings.TrimSpace(v) != "" {
			opts[key] = v
		}
	}
	return opts
}

// GenerateResponse is the structured result of the generate tool.
type GenerateResponse struct {
	Message     string   `json:"message"`
	OutputFiles []string `json:"output_files"`
	ModelUsed   string   `json:"model_used"`
	ItemCount   int      `json:"item_count"`
	TokensUsed  int      `json:"tokens_used"`
	Cost        float64  `json:"cost"`
}

// GeneratorsResponse is the structured result of list_generators.
type GeneratorsResponse struct {
	Generators []generators.Info `json:"generators"`
}

// OutputsResponse is the structured result of list_outputs.
type OutputsResponse struct {
	Files []generation.Artifact `json:"files"`
}

func runMCPServer(ctx context.Context) error {
	a, err := appFromConfig()
	if err != nil {
		return err
	}
	defer a.close()

	impl := &mcp.Implementation{
		Name:    "monadgen",
		Version: version,
	}
	server := mcp.NewServer(impl, &mcp.ServerOptions{})
	registerMCPTools(server, a)
	registerMCPResources(server, a)

	a.log.Info("mcp server starting", "generators", a.registry.Len())
	if err := server.Run(ctx, mcp.NewStdioTransport()); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

func registerMCPTools(server *mcp.Server, a *app) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_generators",
		Description: "List every content generator with its id, name, platform and category.",
	}, listGeneratorsHandler(a))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Run one generator and save its result as Markdown and JSON. Returns the saved file names, token usage and cost.",
	}, generateHandler(a))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_outputs",
		Description: "List saved Markdown and JSON artifacts, newest first.",
	}, listOutputsHandler(a))
}

func registerMCPResources(server *mcp.Server, a *app) {
	server.AddResource(&mcp.Resource{
		URI:         "monadgen://article-inputs",
		Name:        "article-inputs",
		Description: "Stored reader demographics and writing styles usable by substack_article and substack_about",
		MIMEType:    "application/json",
	}, articleInputsResourceHandler(a))
}

func listGeneratorsHandler(a *app) mcp.ToolHandlerFor[struct{}, GeneratorsResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[struct{}]) (*mcp.CallToolResultFor[GeneratorsResponse], error) {
		infos := a.registry.List()
		lines := make([]string, 0, len(infos))
		for _, info := range infos {
			lines = append(lines, fmt.Sprintf("%s: %s (%s/%s)", info.ID, info.Name, info.Platform, info.Category))
		}
		return &mcp.CallToolResultFor[GeneratorsResponse]{
			Content:           []mcp.Content{&mcp.TextContent{Text: strings.Join(lines, "\n")}},
			StructuredContent: GeneratorsResponse{Generators: infos},
		}, nil
	}
}

func generateHandler(a *app) mcp.ToolHandlerFor[GenerateParams, GenerateResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[GenerateParams]) (*mcp.CallToolResultFor[GenerateResponse], error) {
		args := params.Arguments
		logToolCall(a.log, "generate", args)

		g, err := a.registry.Lookup(args.GeneratorID)
		if err != nil {
			return toolError[GenerateResponse](fmt.Sprintf("%v. Call list_generators for valid ids.", err)), nil
		}
		logger.RecordGenerator(ctx, g.ID())

		out, err := a.orch.Run(ctx, generators.Job(g), args.options())
		if err != nil {
			a.log.Error("mcp generate failed", "generator", g.ID(), "error", err)
			return toolError[GenerateResponse](userMessage(err)), nil
		}

		resp := GenerateResponse{
			Message:     out.Message,
			OutputFiles: out.Artifacts,
			ModelUsed:   out.Result.ModelUsed,
			ItemCount:   out.Result.Count(),
			TokensUsed:  out.Result.Usage.TotalTokens(),
			Cost:        out.Result.Usage.Cost,
		}
		text := fmt.Sprintf("%s\nFiles: %s\nTokens: %d", resp.Message, strings.Join(resp.OutputFiles, ", "), resp.TokensUsed)
		return &mcp.CallToolResultFor[GenerateResponse]{
			Content:           []mcp.Content{&mcp.TextContent{Text: text}},
			StructuredContent: resp,
		}, nil
	}
}

func listOutputsHandler(a *app) mcp.ToolHandlerFor[struct{}, OutputsResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[struct{}]) (*mcp.CallToolResultFor[OutputsResponse], error) {
		files, err := a.store.List()
		if err != nil {
			return toolError[OutputsResponse](fmt.Sprintf("list outputs: %v", err)), nil
		}
		if len(files) == 0 {
			return &mcp.CallToolResultFor[OutputsResponse]{
				Content:           []mcp.Content{&mcp.TextContent{Text: "No outputs yet."}},
				StructuredContent: OutputsResponse{Files: files},
			}, nil
		}
		names := make([]string, 0, len(files))
		for _, f := range files {
			names = append(names, f.Name)
		}
		return &mcp.CallToolResultFor[OutputsResponse]{
			Content:           []mcp.Content{&mcp.TextContent{Text: strings.Join(names, "\n")}},
			StructuredContent: OutputsResponse{Files: files},
		}, nil
	}
}

func articleInputsResourceHandler(a *app) mcp.ResourceHandler {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.ReadResourceParams) (*mcp.ReadResourceResult, error) {
		in, err := generators.LoadInputs(a.store)
		if err != nil {
			return nil, fmt.Errorf("load article inputs: %w", err)
		}
		data, err := json.MarshalIndent(in, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal inputs to JSON: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      params.URI,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

// toolError reports a failure to the client as tool output rather than a
// protocol error.
func toolError[T any](msg string) *mcp.CallToolResultFor[T] {
	return &mcp.CallToolResultFor[T]{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}

func logToolCall(log *slog.Logger, toolName string, params any) {
	log.Debug("mcp tool called", "tool", toolName, "params", fmt.Sprintf("%+v", params))
}
