// Package script runs the line-oriented image command language.
//
// Each line holds one command and its whitespace-separated arguments. Blank
// lines and lines starting with '#' are ignored. The commands are:
//
//	load <path> <name>
//	save <path> <name>
//	brighten <increment> <src> <dst>
//	horizontal-flip <src> <dst>
//	vertical-flip <src> <dst>
//	greyscale [<component>] <src> <dst>
//	rgb-split <src> <red-dst> <green-dst> <blue-dst>
//	rgb-combine <dst> <red-src> <green-src> <blue-src>
//	blur <src> <dst>
//	sharpen <src> <dst>
//	sepia <src> <dst>
//	dither <src> <dst>
//	list
//	help
//	run <script-file>
//
// A successful command prints "<Command> successful!". Script files stop at
// the first failing line; interactive sessions report the failure and keep
// reading until "Q" or "q".
package script
