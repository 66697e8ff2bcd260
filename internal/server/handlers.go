package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/image-editor-mcp/internal/editor"
	edimg "github.com/ironsheep/image-editor-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "editor_load", "editor_set_mode").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// Operations the editor skips because a prerequisite is missing are not
// errors: their result carries a "skipped" reason instead.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Session
	case "editor_load":
		return s.handleEditorLoad(args)
	case "editor_status":
		return s.statusResult(nil)
	case "editor_undo":
		return s.statusResult(s.session.Undo(ctx))
	case "editor_reset":
		return s.statusResult(s.session.Reset())
	case "editor_export":
		return s.handleEditorExport(args)

	// Modes and pointer input
	case "editor_set_mode":
		return s.handleEditorSetMode(args)
	case "editor_pointer":
		return s.handleEditorPointer(args)
	case "editor_click":
		return s.handleEditorClick(args)

	// Crop
	case "editor_set_crop_rect":
		return s.handleEditorSetCropRect(args)
	case "editor_apply_crop":
		return s.statusResult(s.session.ApplyCrop())

	// Text
	case "editor_add_text":
		return s.handleEditorAddText()
	case "editor_edit_text":
		return s.handleEditorEditText(args)

	// Settings and redaction
	case "editor_settings":
		return s.handleEditorSettings(args)
	case "editor_redact_text":
		return s.handleEditorRedactText(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// StatusResult is the session status after a tool ran. Skipped is set when the
// editor ignored the call because a prerequisite was missing.
type StatusResult struct {
	Skipped string `json:"skipped,omitempty"`
	editor.Status
}

// statusResult turns the outcome of a session operation into a tool result.
// Guarded no-ops become a skipped status; other errors are returned.
func (s *Server) statusResult(opErr error) (*StatusResult, error) {
	var res StatusResult
	if opErr != nil {
		if !editor.IsNoOp(opErr) {
			return nil, opErr
		}
		res.Skipped = opErr.Error()
	}

	st, err := s.session.Status()
	if err != nil {
		return nil, err
	}
	res.Status = st
	return &res, nil
}

// unmarshalArgs decodes tool arguments into v. Missing arguments leave v at its
// zero value.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	return json.Unmarshal(args, v)
}

// === Session Handlers ===

type editorLoadArgs struct {
	Path string `json:"path"`
}

// LoadResult describes the loaded source file and the session afterwards.
type LoadResult struct {
	Source *edimg.ImageInfo `json:"source"`
	*StatusResult
}

func (s *Server) handleEditorLoad(args json.RawMessage) (interface{}, error) {
	var a editorLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	info, err := edimg.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if err := s.session.LoadImage(img); err != nil {
		return nil, err
	}

	res, err := s.statusResult(nil)
	if err != nil {
		return nil, err
	}
	return &LoadResult{Source: info, StatusResult: res}, nil
}

type editorExportArgs struct {
	OutputPath string `json:"output_path"`
}

// ExportResult carries the composed canvas, either inline or as a written file.
type ExportResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64,omitempty"`
	MimeType    string `json:"mime_type"`
	OutputPath  string `json:"output_path,omitempty"`
}

func (s *Server) handleEditorExport(args json.RawMessage) (interface{}, error) {
	var a editorExportArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	st, err := s.session.Status()
	if err != nil {
		return nil, err
	}
	res := &ExportResult{
		Width:    st.Canvas.Width,
		Height:   st.Canvas.Height,
		MimeType: "image/png",
	}

	if a.OutputPath != "" {
		if err := s.session.ExportFile(a.OutputPath); err != nil {
			return nil, err
		}
		// The file may have been loaded earlier; drop the stale decode.
		s.cache.Evict(a.OutputPath)
		res.OutputPath = a.OutputPath
		return res, nil
	}

	var buf bytes.Buffer
	if err := s.session.ExportPNG(&buf); err != nil {
		return nil, err
	}
	res.ImageBase64 = base64.StdEncoding.EncodeToString(buf.Bytes())
	return res, nil
}

// === Mode and Pointer Handlers ===

type editorSetModeArgs struct {
	Mode string `json:"mode"`
}

func (s *Server) handleEditorSetMode(args json.RawMessage) (interface{}, error) {
	var a editorSetModeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	m, err := editor.ParseMode(a.Mode)
	if err != nil {
		return nil, err
	}
	if _, err := s.session.SetMode(m); err != nil {
		return nil, err
	}
	return s.statusResult(nil)
}

type editorPointerArgs struct {
	Action string  `json:"action"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

func (s *Server) handleEditorPointer(args json.RawMessage) (interface{}, error) {
	var a editorPointerArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	p := edimg.Point{X: a.X, Y: a.Y}
	var err error
	switch a.Action {
	case "down":
		err = s.session.PointerDown(p)
	case "move":
		err = s.session.PointerMove(p)
	case "up":
		err = s.session.PointerUp(p)
	default:
		return nil, fmt.Errorf("invalid pointer action %q: must be down, move, or up", a.Action)
	}
	return s.statusResult(err)
}

type editorClickArgs struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (s *Server) handleEditorClick(args json.RawMessage) (interface{}, error) {
	var a editorClickArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return s.statusResult(s.session.Click(edimg.Point{X: a.X, Y: a.Y}))
}

// === Crop Handlers ===

type editorSetCropRectArgs struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s *Server) handleEditorSetCropRect(args json.RawMessage) (interface{}, error) {
	var a editorSetCropRectArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	r := edimg.Rect{Left: a.Left, Top: a.Top, Width: a.Width, Height: a.Height}
	return s.statusResult(s.session.SetCropRect(r))
}

// === Text Handlers ===

// AddTextResult reports the index of a newly placed text object.
type AddTextResult struct {
	Index int `json:"index"`
	*StatusResult
}

func (s *Server) handleEditorAddText() (interface{}, error) {
	index, err := s.session.AddText()
	if err != nil {
		return nil, err
	}
	res, err := s.statusResult(nil)
	if err != nil {
		return nil, err
	}
	return &AddTextResult{Index: index, StatusResult: res}, nil
}

type editorEditTextArgs struct {
	Index   *int   `json:"index"`
	Content string `json:"content"`
}

func (s *Server) handleEditorEditText(args json.RawMessage) (interface{}, error) {
	var a editorEditTextArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	index := -1
	if a.Index != nil {
		index = *a.Index
	}
	return s.statusResult(s.session.EditText(index, a.Content))
}

// === Settings and Redaction Handlers ===

type editorSettingsArgs struct {
	BrushSize   *float64 `json:"brush_size"`
	BrushColor  *string  `json:"brush_color"`
	MosaicSize  *int     `json:"mosaic_size"`
	MosaicStyle *string  `json:"mosaic_style"`
	TextSize    *float64 `json:"text_size"`
	TextColor   *string  `json:"text_color"`
	TextFont    *string  `json:"text_font"`
}

// handleEditorSettings applies every provided setting in order and stops at the
// first invalid one. Settings applied before the failure stay applied.
func (s *Server) handleEditorSettings(args json.RawMessage) (interface{}, error) {
	var a editorSettingsArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	var steps []func() error
	if a.BrushSize != nil {
		steps = append(steps, func() error { return s.session.SetBrushSize(*a.BrushSize) })
	}
	if a.BrushColor != nil {
		steps = append(steps, func() error { return s.session.SetBrushColor(*a.BrushColor) })
	}
	if a.MosaicSize != nil {
		steps = append(steps, func() error { return s.session.SetMosaicSize(*a.MosaicSize) })
	}
	if a.MosaicStyle != nil {
		steps = append(steps, func() error { return s.session.SetMosaicStyle(*a.MosaicStyle) })
	}
	if a.TextSize != nil {
		steps = append(steps, func() error { return s.session.SetTextSize(*a.TextSize) })
	}
	if a.TextColor != nil {
		steps = append(steps, func() error { return s.session.SetTextColor(*a.TextColor) })
	}
	if a.TextFont != nil {
		steps = append(steps, func() error { return s.session.SetTextFont(*a.TextFont) })
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return s.session.Settings(), nil
}

// defaultMinConfidence is used when editor_redact_text omits min_confidence.
const defaultMinConfidence = 0.3

type editorRedactTextArgs struct {
	MinConfidence *float64 `json:"min_confidence"`
}

// minConfidence returns the requested threshold, or the default when omitted.
func (a editorRedactTextArgs) minConfidence() (float64, error) {
	if a.MinConfidence == nil {
		return defaultMinConfidence, nil
	}
	if c := *a.MinConfidence; c < 0 || c > 1 {
		return 0, fmt.Errorf("min_confidence must be between 0 and 1, got %v", c)
	}
	return *a.MinConfidence, nil
}

// RedactResult reports how many text regions were pixelated.
type RedactResult struct {
	Regions int `json:"regions"`
	*StatusResult
}

func (s *Server) handleEditorRedactText(args json.RawMessage) (interface{}, error) {
	var a editorRedactTextArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	minConfidence, err := a.minConfidence()
	if err != nil {
		return nil, err
	}

	regions, err := s.session.RedactText(minConfidence)
	if err != nil && !editor.IsNoOp(err) {
		return nil, err
	}
	res, serr := s.statusResult(err)
	if serr != nil {
		return nil, serr
	}
	return &RedactResult{Regions: regions, StatusResult: res}, nil
}
