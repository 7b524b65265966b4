// Package domain translates MCP tool calls into character service requests.
//
// Each tool maps its JSON input onto one CharacterService call and returns
// structured output that MCP clients can render or replay.
package domain
