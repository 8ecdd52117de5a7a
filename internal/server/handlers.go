package server

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ironsheep/image-manip-mcp/internal/imaging"
)

// JSON-RPC error codes for tool failures, by imaging.Class.
const (
	codeToolFailed   = -32000
	codeNotFound     = -32001
	codeStorage      = -32002
	codeInvalidParam = -32602
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_blur").
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
// Tool errors become JSON-RPC errors whose code tells the failure class apart:
// -32001 for a missing image, -32602 for a malformed request, -32002 for a
// storage or codec failure and -32000 for anything else.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParam, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		class := imaging.Classify(err)
		s.logger.Debug("tool failed", zap.String("tool", params.Name), zap.Stringer("class", class), zap.Error(err))
		return s.errorResponse(req.ID, errorCode(class), "Tool execution failed", err.Error())
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

func errorCode(class imaging.Class) int {
	switch class {
	case imaging.NotFound:
		return codeNotFound
	case imaging.Malformed:
		return codeInvalidParam
	case imaging.IOFailure:
		return codeStorage
	default:
		return codeToolFailed
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Validates required names and fills in default destinations
//  3. Calls the matching engine operation
//  4. Returns a result describing what was installed, or the error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Registry and Files
	case "image_load":
		return s.handleImageLoad(args)
	case "image_save":
		return s.handleImageSave(args)
	case "image_list":
		return s.handleImageList(args)
	case "image_info":
		return s.handleImageInfo(args)
	case "image_histogram":
		return s.handleImageHistogram(args)

	// Point-wise and Channel Operations
	case "image_brighten":
		return s.handleImageBrighten(args)
	case "image_greyscale":
		return s.handleImageGreyscale(args)
	case "image_rgb_split":
		return s.handleImageRGBSplit(args)
	case "image_rgb_combine":
		return s.handleImageRGBCombine(args)

	// Single-source Transforms
	case "image_horizontal_flip":
		return s.handleTransform(args, "horizontal_flip", s.engine.HorizontalFlip)
	case "image_vertical_flip":
		return s.handleTransform(args, "vertical_flip", s.engine.VerticalFlip)
	case "image_blur":
		return s.handleTransform(args, "blur", s.engine.Blur)
	case "image_sharpen":
		return s.handleTransform(args, "sharpen", s.engine.Sharpen)
	case "image_sepia":
		return s.handleTransform(args, "sepia", s.engine.Sepia)
	case "image_dither":
		return s.handleTransform(args, "dither", s.engine.Dither)

	default:
		return nil, fmt.Errorf("%w: unknown tool: %s", imaging.ErrInvalidArgument, name)
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

// decodeArgs unmarshals tool arguments; absent arguments decode as zero values.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %w", imaging.ErrInvalidArgument, err)
	}
	return nil
}

// require fails for the first empty value, naming the argument.
func require(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return fmt.Errorf("%w: %s is required", imaging.ErrInvalidArgument, pairs[i])
		}
	}
	return nil
}

// orDefault returns name, or src-suffix when name is empty.
func orDefault(name, src, suffix string) string {
	if name != "" {
		return name
	}
	return src + "-" + suffix
}

// TransformResult reports the registry entries a transform read and wrote.
type TransformResult struct {
	Operation string   `json:"operation"`
	Sources   []string `json:"sources"`
	Installed []string `json:"installed"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
}

func (s *Server) transformResult(op string, sources []string, installed ...string) (*TransformResult, error) {
	g, err := s.engine.Registry().Get(installed[0])
	if err != nil {
		return nil, err
	}
	return &TransformResult{
		Operation: op,
		Sources:   sources,
		Installed: installed,
		Width:     g.Width,
		Height:    g.Height,
	}, nil
}

// === Registry and File Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// LoadResult describes a freshly loaded image.
type LoadResult struct {
	Path string `json:"path"`
	*imaging.ImageInfo
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := require("path", a.Path); err != nil {
		return nil, err
	}
	if a.Name == "" {
		base := filepath.Base(a.Path)
		a.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if err := s.engine.Load(a.Path, a.Name); err != nil {
		return nil, err
	}
	info, err := s.engine.Describe(a.Name)
	if err != nil {
		return nil, err
	}
	return &LoadResult{Path: a.Path, ImageInfo: info}, nil
}

type imageSaveArgs struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// SaveResult confirms where an image was written.
type SaveResult struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

func (s *Server) handleImageSave(args json.RawMessage) (interface{}, error) {
	var a imageSaveArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := require("path", a.Path, "name", a.Name); err != nil {
		return nil, err
	}
	if err := s.engine.Save(a.Path, a.Name); err != nil {
		return nil, err
	}
	return &SaveResult{Path: a.Path, Name: a.Name}, nil
}

// ListResult enumerates registered images.
type ListResult struct {
	Images []string `json:"images"`
	Count  int      `json:"count"`
}

func (s *Server) handleImageList(args json.RawMessage) (interface{}, error) {
	names := s.engine.Names()
	return &ListResult{Images: names, Count: len(names)}, nil
}

type imageNameArgs struct {
	Name string `json:"name"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageNameArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := require("name", a.Name); err != nil {
		return nil, err
	}
	return s.engine.Describe(a.Name)
}

func (s *Server) handleImageHistogram(args json.RawMessage) (interface{}, error) {
	var a imageNameArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := require("name", a.Name); err != nil {
		return nil, err
	}
	return s.engine.Histogram(a.Name)
}

// === Point-wise and Channel Handlers ===

type imageBrightenArgs struct {
	Source      string `json:"source"`
	Increment   *int   `json:"increment"`
	Destination string `json:"destination"`
}

func (s *Server) handleImageBrighten(args json.RawMessage) (interface{}, error) {
	var a imageBrightenArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := require("source", a.Source); err != nil {
		return nil, err
	}
	if a.Increment == nil {
		return nil, fmt.Errorf("%w: increment is required", imaging.ErrInvalidArgument)
	}
	dst := orDefault(a.Destination, a.Source, "brighten")
	if err := s.engine.Brighten(*a.Increment, a.Source, dst); err != nil {
		return nil, err
	}
	return s.transformResult("brighten", []string{a.Source}, dst)
}

type imageGreyscaleArgs struct {
	Source      string `json:"source"`
	Component   string `json:"component"`
	Destination string `json:"destination"`
}

func (s *Server) handleImageGreyscale(args json.RawMessage) (interface{}, error) {
	var a imageGreyscaleArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := require("source", a.Source); err != nil {
		return nil, err
	}
	if a.Component == "" {
		a.Component = string(imaging.LumaComponent)
	}
	dst := orDefault(a.Destination, a.Source, "greyscale")
	if err := s.engine.Greyscale(imaging.Component(a.Component), a.Source, dst); err != nil {
		return nil, err
	}
	return s.transformResult("greyscale", []string{a.Source}, dst)
}

type imageRGBSplitArgs struct {
	Source string `json:"source"`
	Red    string `json:"red"`
	Green  string `json:"green"`
	Blue   string `json:"blue"`
}

func (s *Server) handleImageRGBSplit(args json.RawMessage) (interface{}, error) {
	var a imageRGBSplitArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := require("source", a.Source); err != nil {
		return nil, err
	}
	red := orDefault(a.Red, a.Source, "red")
	green := orDefault(a.Green, a.Source, "green")
	blue := orDefault(a.Blue, a.Source, "blue")
	if err := s.engine.RGBSplit(a.Source, red, green, blue); err != nil {
		return nil, err
	}
	return s.transformResult("rgb_split", []string{a.Source}, red, green, blue)
}

type imageRGBCombineArgs struct {
	Red         string `json:"red"`
	Green       string `json:"green"`
	Blue        string `json:"blue"`
	Destination string `json:"destination"`
}

func (s *Server) handleImageRGBCombine(args json.RawMessage) (interface{}, error) {
	var a imageRGBCombineArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := require("red", a.Red, "green", a.Green, "blue", a.Blue); err != nil {
		return nil, err
	}
	dst := orDefault(a.Destination, a.Red, "rgbCombine")
	if err := s.engine.RGBCombine(dst, a.Red, a.Green, a.Blue); err != nil {
		return nil, err
	}
	return s.transformResult("rgb_combine", []string{a.Red, a.Green, a.Blue}, dst)
}

// === Single-source Transform Handlers ===

type imageTransformArgs struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// handleTransform serves every tool shaped as op(source, destination).
func (s *Server) handleTransform(args json.RawMessage, op string, fn func(src, dst string) error) (interface{}, error) {
	var a imageTransformArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := require("source", a.Source); err != nil {
		return nil, err
	}
	dst := orDefault(a.Destination, a.Source, op)
	if err := fn(a.Source, dst); err != nil {
		return nil, err
	}
	return s.transformResult(op, []string{a.Source}, dst)
}
