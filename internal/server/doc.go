// Package server implements the MCP (Model Context Protocol) server for image
// manipulation.
//
// This package provides a JSON-RPC 2.0 server that exposes the engine's named
// image registry and transforms as MCP tools. Images are loaded into the
// registry under a name, transformed into new names, and saved back to disk.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
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
// Registry and Files:
//   - image_load: Read a file into the registry
//   - image_save: Write a registered image to a file
//   - image_list: List registered names
//   - image_info: Dimensions and mean color
//   - image_histogram: Per-channel value counts
//
// Point-wise and Channel Operations:
//   - image_brighten: Add a constant to every channel
//   - image_greyscale: Greyscale by component
//   - image_rgb_split: One image per channel
//   - image_rgb_combine: Merge channels of three images
//
// Single-source Transforms:
//   - image_horizontal_flip, image_vertical_flip
//   - image_blur, image_sharpen
//   - image_sepia
//   - image_dither
//
// Transforms take a source name and an optional destination name. When the
// destination is omitted the result is stored as "<source>-<operation>", for
// example "koala-blur". A transform that fails installs nothing.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses. The code
// reflects the failure class:
//   - -32001: a referenced image is not registered
//   - -32602: malformed arguments or image data (bad header, unknown component,
//     mismatched dimensions)
//   - -32002: file system or codec failure
//   - -32000: any other tool failure
//
// The data field carries the Go error string.
//
// # Usage
//
//	eng := engine.New(logger)
//	srv := server.New(eng, logger, version)
//	if err := srv.Run(); err != nil {
//	    logger.Fatal("server error", zap.Error(err))
//	}
package server
