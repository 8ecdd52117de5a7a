package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

const scenarioPPM = "P3\n2 2\n255\n255 0 0 0 255 0\n0 0 255 255 255 255\n"

// createTestImageFile creates a solid-color PNG and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "solid.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// createScenarioFile writes the 2x2 red, green / blue, white PPM image.
func createScenarioFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.ppm")
	if err := os.WriteFile(path, []byte(scenarioPPM), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return path
}

// callTool sends a tools/call request through handleRequest.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// mustCallTool calls a tool, fails on error and decodes the text result into v.
func mustCallTool(t *testing.T, s *Server, name string, args map[string]interface{}, v interface{}) {
	t.Helper()

	resp := callTool(t, s, name, args)
	if resp.Error != nil {
		t.Fatalf("%s: unexpected error: %+v", name, resp.Error)
	}

	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	if len(content) != 1 || content[0]["type"] != "text" {
		t.Fatalf("%s: unexpected content: %+v", name, content)
	}
	if v == nil {
		return
	}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), v); err != nil {
		t.Fatalf("%s: failed to decode result: %v", name, err)
	}
}

func loadScenario(t *testing.T, s *Server) {
	t.Helper()
	mustCallTool(t, s, "image_load", map[string]interface{}{"path": createScenarioFile(t), "name": "img"}, nil)
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := newTestServer(t)
	imgPath := createTestImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255})

	var result LoadResult
	mustCallTool(t, s, "image_load", map[string]interface{}{"path": imgPath}, &result)

	if result.ImageInfo == nil {
		t.Fatal("result missing image info")
	}
	if result.Name != "solid" {
		t.Errorf("Name: got %q, want solid (file name without extension)", result.Name)
	}
	if result.Width != 100 || result.Height != 80 {
		t.Errorf("size: got %dx%d, want 100x80", result.Width, result.Height)
	}
	if result.MeanColor.Hex != "#ff0000" {
		t.Errorf("mean color: got %s, want #ff0000", result.MeanColor.Hex)
	}
}

func TestHandleToolsCall_ImageLoad_PPM(t *testing.T) {
	s := newTestServer(t)

	var result LoadResult
	mustCallTool(t, s, "image_load", map[string]interface{}{"path": createScenarioFile(t), "name": "img"}, &result)

	if result.Name != "img" || result.Width != 2 || result.Height != 2 {
		t.Errorf("result: got %+v", result.ImageInfo)
	}
}

func TestHandleToolsCall_SaveRoundTrip(t *testing.T) {
	s := newTestServer(t)
	loadScenario(t, s)
	out := filepath.Join(t.TempDir(), "out.ppm")

	var saved SaveResult
	mustCallTool(t, s, "image_save", map[string]interface{}{"path": out, "name": "img"}, &saved)
	if saved.Path != out {
		t.Errorf("Path: got %q, want %q", saved.Path, out)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != scenarioPPM {
		t.Errorf("saved file: got %q, want %q", data, scenarioPPM)
	}
}

func TestHandleToolsCall_List(t *testing.T) {
	s := newTestServer(t)
	loadScenario(t, s)
	mustCallTool(t, s, "image_blur", map[string]interface{}{"source": "img"}, nil)

	var list ListResult
	mustCallTool(t, s, "image_list", nil, &list)
	if list.Count != 2 || list.Images[0] != "img" || list.Images[1] != "img-blur" {
		t.Errorf("list: got %+v, want [img img-blur]", list)
	}
}

func TestHandleToolsCall_Info(t *testing.T) {
	s := newTestServer(t)
	loadScenario(t, s)

	var info struct {
		Width     int `json:"width"`
		MeanColor struct {
			Hex string `json:"hex"`
		} `json:"mean_color"`
	}
	mustCallTool(t, s, "image_info", map[string]interface{}{"name": "img"}, &info)
	if info.Width != 2 || info.MeanColor.Hex != "#808080" {
		t.Errorf("info: got %+v", info)
	}
}

func TestHandleToolsCall_Histogram(t *testing.T) {
	s := newTestServer(t)
	loadScenario(t, s)

	var hist struct {
		Red       []int `json:"red"`
		Intensity []int `json:"intensity"`
	}
	mustCallTool(t, s, "image_histogram", map[string]interface{}{"name": "img"}, &hist)
	if len(hist.Red) != 256 {
		t.Fatalf("red bins: got %d, want 256", len(hist.Red))
	}
	if hist.Red[255] != 2 || hist.Intensity[85] != 3 || hist.Intensity[255] != 1 {
		t.Errorf("histogram: red[255]=%d intensity[85]=%d intensity[255]=%d",
			hist.Red[255], hist.Intensity[85], hist.Intensity[255])
	}
}

func TestHandleToolsCall_DefaultDestinations(t *testing.T) {
	tests := []struct {
		tool string
		args map[string]interface{}
		want []string
	}{
		{"image_brighten", map[string]interface{}{"source": "img", "increment": 20}, []string{"img-brighten"}},
		{"image_greyscale", map[string]interface{}{"source": "img"}, []string{"img-greyscale"}},
		{"image_horizontal_flip", map[string]interface{}{"source": "img"}, []string{"img-horizontal_flip"}},
		{"image_vertical_flip", map[string]interface{}{"source": "img"}, []string{"img-vertical_flip"}},
		{"image_blur", map[string]interface{}{"source": "img"}, []string{"img-blur"}},
		{"image_sharpen", map[string]interface{}{"source": "img"}, []string{"img-sharpen"}},
		{"image_sepia", map[string]interface{}{"source": "img"}, []string{"img-sepia"}},
		{"image_dither", map[string]interface{}{"source": "img"}, []string{"img-dither"}},
		{"image_rgb_split", map[string]interface{}{"source": "img"}, []string{"img-red", "img-green", "img-blue"}},
		{"image_rgb_combine", map[string]interface{}{"red": "img", "green": "img", "blue": "img"}, []string{"img-rgbCombine"}},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			s := newTestServer(t)
			loadScenario(t, s)

			var result TransformResult
			mustCallTool(t, s, tt.tool, tt.args, &result)

			if len(result.Installed) != len(tt.want) {
				t.Fatalf("installed: got %v, want %v", result.Installed, tt.want)
			}
			for i, name := range tt.want {
				if result.Installed[i] != name {
					t.Errorf("installed[%d]: got %q, want %q", i, result.Installed[i], name)
				}
				if !s.engine.Registry().Has(name) {
					t.Errorf("%s not registered", name)
				}
			}
			if result.Width != 2 || result.Height != 2 {
				t.Errorf("size: got %dx%d, want 2x2", result.Width, result.Height)
			}
		})
	}
}

func TestHandleToolsCall_ExplicitDestination(t *testing.T) {
	s := newTestServer(t)
	loadScenario(t, s)

	var result TransformResult
	mustCallTool(t, s, "image_greyscale", map[string]interface{}{
		"source":      "img",
		"component":   "value-component",
		"destination": "bright-grey",
	}, &result)

	g, err := s.engine.Registry().Get("bright-grey")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	for i, p := range g.Pix {
		if p.R != 255 {
			t.Errorf("pixel %d: got %+v, want value 255", i, p)
		}
	}
	if result.Operation != "greyscale" || result.Sources[0] != "img" {
		t.Errorf("result: got %+v", result)
	}
}

func TestHandleToolsCall_ErrorCodes(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		args     map[string]interface{}
		wantCode int
	}{
		{"missing source image", "image_blur", map[string]interface{}{"source": "ghost"}, -32001},
		{"missing info image", "image_info", map[string]interface{}{"name": "ghost"}, -32001},
		{"missing source argument", "image_sepia", map[string]interface{}{}, -32602},
		{"missing increment", "image_brighten", map[string]interface{}{"source": "img"}, -32602},
		{"bad component", "image_greyscale", map[string]interface{}{"source": "img", "component": "hue"}, -32602},
		{"unknown tool", "image_rotate", map[string]interface{}{}, -32602},
		{"missing file", "image_load", map[string]interface{}{"path": "/nonexistent/image.png"}, -32002},
		{"unsupported save format", "image_save", map[string]interface{}{"path": "/tmp/out.xyz", "name": "img"}, -32002},
		{"wrong argument type", "image_brighten", map[string]interface{}{"source": "img", "increment": "lots"}, -32602},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			loadScenario(t, s)

			resp := callTool(t, s, tt.tool, tt.args)
			if resp.Error == nil {
				t.Fatal("Expected error response")
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("Error code: got %d, want %d (%v)", resp.Error.Code, tt.wantCode, resp.Error.Data)
			}
		})
	}
}

func TestHandleToolsCall_CombineDimensionMismatch(t *testing.T) {
	s := newTestServer(t)
	loadScenario(t, s)
	mustCallTool(t, s, "image_load", map[string]interface{}{
		"path": createTestImageFile(t, 3, 3, color.White),
		"name": "big",
	}, nil)

	resp := callTool(t, s, "image_rgb_combine", map[string]interface{}{
		"red": "img", "green": "big", "blue": "img", "destination": "out",
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Fatalf("Expected -32602, got %+v", resp.Error)
	}
	if s.engine.Registry().Has("out") {
		t.Error("failed combine installed its destination")
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := newTestServer(t)
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  []byte(`{invalid json`),
	}

	resp := s.handleRequest(req)

	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error == nil {
		t.Fatal("Expected error for invalid params")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
	}
}

func TestExecuteTool_AllTools(t *testing.T) {
	s := newTestServer(t)
	loadScenario(t, s)

	// Every listed tool must be dispatched; unknown names are the only
	// "unknown tool" errors.
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			_, err := s.executeTool(tool.Name, json.RawMessage(`{}`))
			if err != nil && err.Error() == "invalid argument: unknown tool: "+tool.Name {
				t.Errorf("tool %s is not dispatched", tool.Name)
			}
		})
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := newTestServer(t)
	_, err := s.executeTool("image_info", json.RawMessage(`{invalid`))
	if err == nil {
		t.Error("Expected error for invalid JSON")
	}
}
