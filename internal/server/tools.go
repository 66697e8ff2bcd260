package server

import "github.com/ironsheep/image-editor-mcp/internal/render"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// noArgsSchema is the input schema of tools that take no arguments.
func noArgsSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// pointSchema describes a canvas coordinate pair.
func pointSchema() map[string]interface{} {
	return map[string]interface{}{
		"x": map[string]interface{}{
			"type":        "number",
			"description": "Canvas X coordinate in pixels",
		},
		"y": map[string]interface{}{
			"type":        "number",
			"description": "Canvas Y coordinate in pixels",
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	pointer := pointSchema()
	pointer["action"] = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"down", "move", "up"},
		"description": "Pointer event to deliver to the active mode",
	}

	return []Tool{
		// Session
		{
			Name:        "editor_load",
			Description: "Load an image file into the editor. The image is scaled down to fit the canvas, centered, and locked in place. A history snapshot is recorded.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "editor_status",
			Description: "Report the active mode, canvas state, image placement, text objects, history position, and current settings.",
			InputSchema: noArgsSchema(),
		},
		{
			Name:        "editor_undo",
			Description: "Leave the active mode and restore the previous history snapshot. Later snapshots are kept until the next edit discards them.",
			InputSchema: noArgsSchema(),
		},
		{
			Name:        "editor_reset",
			Description: "Rebuild the canvas from the originally loaded image and clear the history down to that single state.",
			InputSchema: noArgsSchema(),
		},
		{
			Name:        "editor_export",
			Description: "Render the canvas (background, image, strokes, text) as PNG. Returns base64 unless output_path is given, in which case the file is written.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional absolute path to write the PNG to",
					},
				},
			},
		},

		// Modes and pointer input
		{
			Name:        "editor_set_mode",
			Description: "Enter an editing mode, or leave it if it is already active. Only one of draw, crop, mosaic, and text is active at a time; 'none' leaves the current mode.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"none", "draw", "crop", "mosaic", "text"},
						"description": "Mode to toggle",
					},
				},
				"required": []string{"mode"},
			},
		},
		{
			Name:        "editor_pointer",
			Description: "Deliver a pointer down, move, or up event at a canvas coordinate. Drags draw strokes, paint mosaic cells, or move the crop selection depending on the mode.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": pointer,
				"required":   []string{"action", "x", "y"},
			},
		},
		{
			Name:        "editor_click",
			Description: "Press and release at a canvas coordinate. In text mode this places a new text or selects an existing one.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": pointSchema(),
				"required":   []string{"x", "y"},
			},
		},

		// Crop
		{
			Name:        "editor_set_crop_rect",
			Description: "Move and resize the crop selection. Crop mode must be active.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"left": map[string]interface{}{
						"type":        "number",
						"description": "Left edge in canvas pixels",
					},
					"top": map[string]interface{}{
						"type":        "number",
						"description": "Top edge in canvas pixels",
					},
					"width": map[string]interface{}{
						"type":        "number",
						"description": "Selection width in canvas pixels",
					},
					"height": map[string]interface{}{
						"type":        "number",
						"description": "Selection height in canvas pixels",
					},
				},
				"required": []string{"left", "top", "width", "height"},
			},
		},
		{
			Name:        "editor_apply_crop",
			Description: "Replace the image with the pixels under the crop selection, centered at unit scale. Leaves crop mode.",
			InputSchema: noArgsSchema(),
		},

		// Text
		{
			Name:        "editor_add_text",
			Description: "Add a text object with the default content at the fixed anchor position, using the current text size, color, and font.",
			InputSchema: noArgsSchema(),
		},
		{
			Name:        "editor_edit_text",
			Description: "Replace the content of a text object. Without an index, the selected text is edited.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Text index as reported by editor_status (default: selected text)",
					},
					"content": map[string]interface{}{
						"type":        "string",
						"description": "New text content; may be empty",
					},
				},
				"required": []string{"content"},
			},
		},

		// Settings and redaction
		{
			Name:        "editor_settings",
			Description: "Change brush, mosaic, and text settings. Only the given fields change. Returns the settings in effect.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"brush_size": map[string]interface{}{
						"type":        "number",
						"description": "Brush width in pixels",
					},
					"brush_color": map[string]interface{}{
						"type":        "string",
						"description": "Brush color as hex (#rrggbb)",
					},
					"mosaic_size": map[string]interface{}{
						"type":        "integer",
						"description": "Mosaic cell size in image pixels",
					},
					"mosaic_style": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"square", "circle"},
						"description": "Mosaic cell shape",
					},
					"text_size": map[string]interface{}{
						"type":        "number",
						"description": "Font size for new text",
					},
					"text_color": map[string]interface{}{
						"type":        "string",
						"description": "Fill color for new text as hex (#rrggbb)",
					},
					"text_font": map[string]interface{}{
						"type":        "string",
						"enum":        render.FontFamilies(),
						"description": "Font family for new text",
					},
				},
			},
		},
		{
			Name:        "editor_redact_text",
			Description: "Find regions of the image that look like text and pixelate them with square cells of the current mosaic size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"min_confidence": map[string]interface{}{
						"type":        "number",
						"description": "Minimum detection confidence 0-1 (default: 0.3)",
						"default":     0.3,
					},
				},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
