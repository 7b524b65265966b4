// Package service wires the MCP protocol transport to the character tools.
//
// It owns the gRPC connection to the chargen server and the MCP server
// lifecycle; tool semantics live in the domain package.
package service
