package codegen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"asset-sync/feature/asset"
	"asset-sync/feature/project"

	"go.uber.org/zap"
)

// GeneratedFileExt is the extension of individually generated files.
const GeneratedFileExt = ".lua"

// Input is the projection of a synced input that codegen consumes. Keeping
// it independent of the syncer keeps the tree builder pure and testable.
type Input struct {
	// Path is the absolute path of the source file.
	Path string
	// BasePath is the root the generated namespace is relative to.
	BasePath string
	// Kind selects the template.
	Kind project.CodegenKind
	// ID is the resolved identifier, empty if the input never synced.
	ID string
	// Slice is the atlas sub-region, if the input was packed.
	Slice *asset.Slice
}

// WriteGrouped renders all inputs into one consolidated file at outputPath:
// a nested Lua table mirroring the inputs' paths relative to their base
// paths.
//
// Folder/file conflicts between inputs are logged and skip only the
// offending input; sibling branches still render. Leaves that never resolved
// an identifier are omitted entirely rather than rendered as placeholders.
func WriteGrouped(outputPath string, inputs []Input, log *zap.Logger) error {
	// Insertion order is part of the conflict policy, so fix it.
	sorted := make([]Input, len(inputs))
	copy(sorted, inputs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	root := newFolder()
	for i := range sorted {
		input := &sorted[i]

		segments := relativeSegments(input.BasePath, input.Path)
		if len(segments) == 0 {
			log.Error("Input has no path relative to its base path", zap.String("path", input.Path))
			continue
		}
		// The last segment is a file; its stem names the leaf.
		last := segments[len(segments)-1]
		segments[len(segments)-1] = strings.TrimSuffix(last, filepath.Ext(last))

		if conflict := root.insert(segments, input); conflict != nil {
			log.Error("A path tried to traverse through a file as if it were a folder",
				zap.String("path", conflict.Path),
				zap.String("segment", conflict.Segment))
			continue
		}
	}

	expr, _ := renderNode(root)

	content := Render(expr)
	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write generated file %q: %w", outputPath, err)
	}

	log.Debug("Generated grouped code", zap.String("path", outputPath), zap.Int("inputs", len(inputs)))

	return nil
}

// WriteIndividual writes one generated file next to each input that has a
// codegen kind and a resolved identifier. Inputs without an identifier
// produce no output for the run; that is not an error.
func WriteIndividual(inputs []Input, log *zap.Logger) error {
	sorted := make([]Input, len(inputs))
	copy(sorted, inputs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	for i := range sorted {
		input := &sorted[i]

		if input.Kind.IsNone() {
			continue
		}

		expr, ok := renderInput(input)
		if !ok {
			log.Debug("Skipping codegen because this input was not uploaded", zap.String("path", input.Path))
			continue
		}

		outputPath := strings.TrimSuffix(input.Path, filepath.Ext(input.Path)) + GeneratedFileExt

		if err := os.WriteFile(outputPath, []byte(Render(expr)), 0o644); err != nil {
			return fmt.Errorf("write generated file %q: %w", outputPath, err)
		}

		log.Debug("Generated code", zap.String("path", outputPath))
	}

	return nil
}

// renderNode renders a tree node bottom-up. Folders always render, even when
// every child was omitted; leaves render only when their input does.
func renderNode(n *node) (Expression, bool) {
	if n.children == nil {
		return renderInput(n.input)
	}

	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)

	table := Table{}
	for _, name := range names {
		child, ok := renderNode(n.children[name])
		if !ok {
			continue
		}
		table.Entries = append(table.Entries, Entry{Key: name, Value: child})
	}

	return table, true
}

// renderInput renders the template for one input, or reports that the input
// should be omitted.
func renderInput(input *Input) (Expression, bool) {
	if input.ID == "" {
		return nil, false
	}

	switch input.Kind {
	case project.KindAssetURL:
		return assetURLTemplate(input.ID), true
	case project.KindURLAndSlice:
		return urlAndSliceTemplate(input.ID, input.Slice), true
	default:
		return nil, false
	}
}

// assetURLTemplate renders a single URI string referencing the identifier.
func assetURLTemplate(id string) Expression {
	return String("asset://" + id)
}

// urlAndSliceTemplate renders a record with the URI plus, when a slice is
// present, the offset and size of the sub-region.
func urlAndSliceTemplate(id string, slice *asset.Slice) Expression {
	table := Table{Entries: []Entry{
		{Key: "Image", Value: String("asset://" + id)},
	}}

	if slice != nil {
		table.Entries = append(table.Entries,
			Entry{Key: "ImageRectOffset", Value: Raw(fmt.Sprintf("Vector2.new(%d, %d)", slice.Min[0], slice.Min[1]))},
			Entry{Key: "ImageRectSize", Value: Raw(fmt.Sprintf("Vector2.new(%d, %d)", slice.Size[0], slice.Size[1]))},
		)
	}

	return table
}

// relativeSegments maps an input path onto tree segments relative to its
// base path. "." segments drop out and ".." segments pop their predecessor;
// a path that ascends above its base is a programming error upstream, not a
// recoverable condition.
func relativeSegments(basePath, path string) []string {
	rel, err := filepath.Rel(basePath, path)
	if err != nil {
		panic(fmt.Sprintf("input %q has no path relative to base path %q: %v", path, basePath, err))
	}

	var segments []string
	for _, segment := range strings.Split(filepath.ToSlash(rel), "/") {
		switch segment {
		case "", ".":
		case "..":
			if len(segments) == 0 {
				panic(fmt.Sprintf("input %q ascends above its base path %q", path, basePath))
			}
			segments = segments[:len(segments)-1]
		default:
			segments = append(segments, segment)
		}
	}
	return segments
}
