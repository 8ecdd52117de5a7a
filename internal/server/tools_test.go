package server

import (
	"strings"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"image_load",
		"image_save",
		"image_list",
		"image_info",
		"image_histogram",
		"image_brighten",
		"image_greyscale",
		"image_rgb_split",
		"image_rgb_combine",
		"image_horizontal_flip",
		"image_vertical_flip",
		"image_blur",
		"image_sharpen",
		"image_sepia",
		"image_dither",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("Duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("Tool count: got %d, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Name == "" {
				t.Error("Tool name is empty")
			}
			if !strings.HasPrefix(tool.Name, "image_") {
				t.Errorf("Tool name %s lacks image_ prefix", tool.Name)
			}
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}

			if tool.InputSchema == nil {
				t.Fatal("InputSchema is nil")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want object", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema missing 'properties' field")
			}

			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required %q is not a declared property", r)
				}
			}
		})
	}
}

func TestToolDefinitions_RequiredSource(t *testing.T) {
	// Every transform reads from a named source
	toolsRequiringSource := []string{
		"image_brighten",
		"image_greyscale",
		"image_rgb_split",
		"image_horizontal_flip",
		"image_vertical_flip",
		"image_blur",
		"image_sharpen",
		"image_sepia",
		"image_dither",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for _, name := range toolsRequiringSource {
		t.Run(name, func(t *testing.T) {
			tool, ok := toolMap[name]
			if !ok {
				t.Fatalf("tool %s not found", name)
			}
			required := tool.InputSchema["required"].([]string)

			hasSource := false
			for _, r := range required {
				if r == "source" {
					hasSource = true
					break
				}
			}
			if !hasSource {
				t.Error("Tool should require 'source' parameter")
			}

			props := tool.InputSchema["properties"].(map[string]interface{})
			if name != "image_rgb_split" {
				if _, ok := props["destination"]; !ok {
					t.Error("Tool should accept optional 'destination'")
				}
			}
		})
	}
}

func TestToolDefinitions_GreyscaleComponents(t *testing.T) {
	var greyscale Tool
	for _, tool := range GetToolDefinitions() {
		if tool.Name == "image_greyscale" {
			greyscale = tool
			break
		}
	}

	props := greyscale.InputSchema["properties"].(map[string]interface{})
	component, ok := props["component"].(map[string]interface{})
	if !ok {
		t.Fatal("component property missing")
	}

	enum, ok := component["enum"].([]string)
	if !ok {
		t.Fatal("component enum should be a string slice")
	}
	want := map[string]bool{
		"red-component": true, "green-component": true, "blue-component": true,
		"value-component": true, "luma-component": true, "intensity-component": true,
	}
	if len(enum) != len(want) {
		t.Errorf("enum has %d values, want %d", len(enum), len(want))
	}
	for _, v := range enum {
		if !want[v] {
			t.Errorf("unexpected component %q", v)
		}
	}
	if component["default"] != "luma-component" {
		t.Errorf("default: got %v, want luma-component", component["default"])
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer(t)
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	expected := GetToolDefinitions()
	if len(toolsList) != len(expected) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(expected))
	}
}
