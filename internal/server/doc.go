// Package server exposes one image editing session over the MCP (Model Context
// Protocol).
//
// The server speaks JSON-RPC 2.0 over stdio, one request per line:
//   - Input: JSON-RPC requests on stdin
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Session:
//   - editor_load: Load an image file onto the canvas
//   - editor_status: Report mode, objects, history and settings
//   - editor_undo: Restore the previous snapshot
//   - editor_reset: Return to the originally loaded image
//   - editor_export: Render the canvas as PNG
//
// Modes and pointer input:
//   - editor_set_mode: Toggle draw, crop, mosaic or text mode
//   - editor_pointer: Deliver pointer down/move/up
//   - editor_click: Press and release at one point
//
// Crop:
//   - editor_set_crop_rect: Move and resize the selection
//   - editor_apply_crop: Replace the image with the selection
//
// Text:
//   - editor_add_text: Add text at the default anchor
//   - editor_edit_text: Replace text content
//
// Settings and redaction:
//   - editor_settings: Change brush, mosaic and text settings
//   - editor_redact_text: Pixelate regions that look like text
//
// # Image Caching
//
// Files loaded with editor_load are decoded once and cached by path for the
// lifetime of the process. Exporting over a cached path evicts it.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Calls the editor ignores because a prerequisite is missing, such as undo with
// no older snapshot, succeed with a "skipped" field in the result.
//
// # Usage
//
//	session, err := editor.NewSession(editor.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//	if err := server.New(session, nil).Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
