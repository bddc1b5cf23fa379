package main

import (
	"context"

	"github.com/domnix/domnix/checker"
	"github.com/domnix/domnix/config"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// checkDomainArgs are the tool arguments for a single domain check.
type checkDomainArgs struct {
	Domain string `json:"domain" jsonschema:"the domain name to check, with or without a TLD"`
}

// runMCPServer serves the domain checker as an MCP tool over stdio, so MCP
// clients can run WHOIS availability checks directly.
func runMCPServer(ctx context.Context, chk *checker.Checker) error {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "domnix",
		Version: config.Version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_domain",
		Description: "Check whether a domain is registered, free, or unknown via the WHOIS hierarchy",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args checkDomainArgs) (*mcp.CallToolResult, checker.Result, error) {
		return nil, chk.Check(ctx, args.Domain), nil
	})

	return server.Run(ctx, &mcp.StdioTransport{})
}
