// This file is part of mdptrace.
//
// mdptrace is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// mdptrace is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with mdptrace.  If not, see <https://www.gnu.org/licenses/>.

package mcpserve

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mdptrace/mdptrace/convert"
	"github.com/mdptrace/mdptrace/logger"
	"github.com/mdptrace/mdptrace/packets"
	"github.com/mdptrace/mdptrace/version"
)

// Names of the tools provided by the server.
const (
	ConvertTool  = "convert_trace"
	DescribeTool = "describe_trace"
)

// Server is an MCP server for trace conversion.
type Server struct {
	mcp *server.MCPServer
}

// NewServer is the preferred method of initialisation for the Server type.
func NewServer() *Server {
	v, _, _ := version.Version()

	s := &Server{
		mcp: server.NewMCPServer(
			version.ApplicationName,
			v,
			server.WithLogging(),
		),
	}

	s.mcp.AddTool(mcp.NewTool(ConvertTool,
		mcp.WithDescription("Convert an mdp profiling trace of a 68000 program to a JSON timeline that can be opened in chrome://tracing, Perfetto or Speedscope"),
		mcp.WithString("trace_path",
			mcp.Required(),
			mcp.Description("Path to the .mdp trace file"),
		),
		mcp.WithString("output_path",
			mcp.Required(),
			mcp.Description("Path of the JSON file to create"),
		),
		mcp.WithString("symbols_path",
			mcp.Description("Path to an asm68k, AS listing or nm symbols file used to name subroutines"),
		),
		mcp.WithString("intervals_path",
			mcp.Description("Path to an intervals file. Requires a symbols file if the intervals refer to symbols"),
		),
		mcp.WithString("process_name",
			mcp.Description("Name of the process in the timeline (default: M68000)"),
		),
	), s.ConvertTrace)

	s.mcp.AddTool(mcp.NewTool(DescribeTool,
		mcp.WithDescription("Summarise an mdp profiling trace: format version, clock rate, divider and the number of packets of each kind"),
		mcp.WithString("trace_path",
			mcp.Required(),
			mcp.Description("Path to the .mdp trace file"),
		),
	), s.DescribeTrace)

	return s
}

// Serve requests on stdin and stdout. Returns when stdin is closed.
func (s *Server) Serve() error {
	logger.Logf(logger.Allow, "mcp", "serving %s", version.String())
	return server.ServeStdio(s.mcp)
}

// ConvertTrace is the handler for the convert_trace tool.
func (s *Server) ConvertTrace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tracePath, err := request.RequireString("trace_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	outputPath, err := request.RequireString("output_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	opts := convert.Options{
		TracePath:     tracePath,
		OutputPath:    outputPath,
		SymbolsPath:   request.GetString("symbols_path", ""),
		IntervalsPath: request.GetString("intervals_path", ""),
		ProcessName:   request.GetString("process_name", ""),
	}

	logger.Logf(logger.Allow, "mcp", "%s: %s", ConvertTool, tracePath)

	res, err := convert.Run(opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to convert trace: %v", err)), nil
	}

	sb := strings.Builder{}
	sb.WriteString("Trace converted successfully!\n\n")
	sb.WriteString(fmt.Sprintf("Output: %s\n", res.OutputPath))
	sb.WriteString(fmt.Sprintf("Packets: %d\n", res.Packets))
	sb.WriteString(fmt.Sprintf("Events: %d\n", res.Events))
	sb.WriteString(fmt.Sprintf("Clock rate: %.0f Hz\n", res.ClockRate))
	sb.WriteString(fmt.Sprintf("Divider: %d\n", res.Divider))
	sb.WriteString(fmt.Sprintf("Size: %d bytes\n", res.Bytes))
	if len(res.Lanes) > 0 {
		sb.WriteString("Custom lanes:\n")
		for _, l := range res.Lanes {
			sb.WriteString(fmt.Sprintf("  %d: %s\n", l.ID, l.Name))
		}
	}

	return mcp.NewToolResultText(sb.String()), nil
}

// DescribeTrace is the handler for the describe_trace tool.
func (s *Server) DescribeTrace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tracePath, err := request.RequireString("trace_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	logger.Logf(logger.Allow, "mcp", "%s: %s", DescribeTool, tracePath)

	c, err := packets.LoadFile(tracePath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read trace: %v", err)), nil
	}

	return mcp.NewToolResultText(c.Summary().String()), nil
}
