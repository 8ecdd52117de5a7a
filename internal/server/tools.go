package server

import "github.com/ironsheep/image-manip-mcp/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	if required == nil {
		required = []string{}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// transformTool describes a tool shaped as op(source, destination).
func transformTool(name, description, suffix string) Tool {
	return Tool{
		Name:        name,
		Description: description,
		InputSchema: objectSchema(map[string]interface{}{
			"source":      stringProp("Name of the registered source image"),
			"destination": stringProp("Name to install the result under. Default: <source>-" + suffix),
		}, "source"),
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	components := make([]string, len(imaging.Components))
	for i, c := range imaging.Components {
		components[i] = string(c)
	}

	return []Tool{
		// Registry and Files
		{
			Name:        "image_load",
			Description: "Load an image file into the registry under a name. Files ending in .ppm are read as plain-text P3; anything else is decoded as PNG, JPEG, GIF, BMP, TIFF or WebP. Loading onto an existing name replaces it.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": stringProp("Absolute path to the image file"),
				"name": stringProp("Registry name for the image. Default: the file name without its extension"),
			}, "path"),
		},
		{
			Name:        "image_save",
			Description: "Write a registered image to a file. The extension picks the format: .ppm, .png, .jpg/.jpeg, .gif, .bmp or .tif/.tiff.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": stringProp("Absolute path of the file to write"),
				"name": stringProp("Registry name of the image to save"),
			}, "path", "name"),
		},
		{
			Name:        "image_list",
			Description: "List the names of all registered images in sorted order.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "image_info",
			Description: "Get the width, height and mean color (hex, RGB, HSL) of a registered image.",
			InputSchema: objectSchema(map[string]interface{}{
				"name": stringProp("Registry name of the image"),
			}, "name"),
		},
		{
			Name:        "image_histogram",
			Description: "Count how many pixels take each value 0-255 in the red, green and blue channels and in intensity ((r+g+b)/3).",
			InputSchema: objectSchema(map[string]interface{}{
				"name": stringProp("Registry name of the image"),
			}, "name"),
		},

		// Point-wise and Channel Operations
		{
			Name:        "image_brighten",
			Description: "Add an increment to every channel of every pixel, clamping to 0-255. Negative increments darken.",
			InputSchema: objectSchema(map[string]interface{}{
				"source": stringProp("Name of the registered source image"),
				"increment": map[string]interface{}{
					"type":        "integer",
					"description": "Amount added to each channel; may be negative",
				},
				"destination": stringProp("Name to install the result under. Default: <source>-brighten"),
			}, "source", "increment"),
		},
		{
			Name:        "image_greyscale",
			Description: "Convert an image to greyscale using one channel or formula for every pixel.",
			InputSchema: objectSchema(map[string]interface{}{
				"source": stringProp("Name of the registered source image"),
				"component": map[string]interface{}{
					"type":        "string",
					"description": "Formula for the grey value. Default: luma-component (0.2126r + 0.7152g + 0.0722b)",
					"enum":        components,
					"default":     string(imaging.LumaComponent),
				},
				"destination": stringProp("Name to install the result under. Default: <source>-greyscale"),
			}, "source"),
		},
		{
			Name:        "image_rgb_split",
			Description: "Split an image into three images holding a shared luma value (0.299r + 0.587g + 0.114b) in only the red, green or blue channel.",
			InputSchema: objectSchema(map[string]interface{}{
				"source": stringProp("Name of the registered source image"),
				"red":    stringProp("Name for the red-channel image. Default: <source>-red"),
				"green":  stringProp("Name for the green-channel image. Default: <source>-green"),
				"blue":   stringProp("Name for the blue-channel image. Default: <source>-blue"),
			}, "source"),
		},
		{
			Name:        "image_rgb_combine",
			Description: "Build an image from the red channel of one image, the green channel of another and the blue channel of a third. All three must have the same dimensions.",
			InputSchema: objectSchema(map[string]interface{}{
				"red":         stringProp("Image supplying the red channel"),
				"green":       stringProp("Image supplying the green channel"),
				"blue":        stringProp("Image supplying the blue channel"),
				"destination": stringProp("Name to install the result under. Default: <red>-rgbCombine"),
			}, "red", "green", "blue"),
		},

		// Single-source Transforms
		transformTool("image_horizontal_flip", "Mirror an image left to right.", "horizontal_flip"),
		transformTool("image_vertical_flip", "Mirror an image top to bottom.", "vertical_flip"),
		transformTool("image_blur", "Blur an image with a 3x3 Gaussian kernel. Edge pixels are extended outward.", "blur"),
		transformTool("image_sharpen", "Sharpen an image with a 3x3 center-weighted kernel. Edge pixels are extended outward.", "sharpen"),
		transformTool("image_sepia", "Apply a sepia tone through a fixed 3x3 color matrix.", "sepia"),
		transformTool("image_dither", "Reduce an image to black and white with Floyd-Steinberg error diffusion over its luma.", "dither"),
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
