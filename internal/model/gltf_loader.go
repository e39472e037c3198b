package model

import (
	"fmt"
	"log"

	"github.com/decker502/pointswarm/pkg/transition"
	"github.com/decker502/pointswarm/pkg/types"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadFile reads every mesh primitive's POSITION attribute from a .gltf or .glb file.
//
// Each primitive becomes one vertex array, in document order. Node transforms are
// ignored: positions are returned in mesh space.
//
// Parameters:
//   - path: File path of the glTF document (JSON or binary container)
//
// Returns:
//   - [][]types.Vec3: One vertex array per primitive that has positions
//   - error: Any error encountered while opening or decoding the document
func LoadFile(path string) ([][]types.Vec3, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model %s: %w", path, err)
	}
	arrays, err := LoadDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", path, err)
	}
	log.Printf("[Model] Loaded %s: %d vertex arrays", path, len(arrays))
	return arrays, nil
}

// LoadDocument extracts vertex arrays from an already decoded document.
// Primitives without a POSITION attribute are skipped.
func LoadDocument(doc *gltf.Document) ([][]types.Vec3, error) {
	var arrays [][]types.Vec3
	for mi, mesh := range doc.Meshes {
		for pi, prim := range mesh.Primitives {
			idx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			if int(idx) >= len(doc.Accessors) {
				return nil, fmt.Errorf("mesh %d primitive %d: position accessor %d out of range", mi, pi, idx)
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[idx], nil)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			vertices := make([]types.Vec3, len(positions))
			for i, p := range positions {
				vertices[i] = types.FromFloat32(p)
			}
			arrays = append(arrays, vertices)
		}
	}
	return arrays, nil
}

// FileLoader returns a source loader that reads the given model file when invoked.
func FileLoader(path string) transition.SourceLoader {
	return func() ([][]types.Vec3, error) {
		return LoadFile(path)
	}
}
