package renderer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// wgslTypeLayout holds the byte size and alignment for a WGSL type per the WGSL specification.
type wgslTypeLayout struct {
	size  uint64
	align uint64
}

// wgslStructLayout is the host-shareable layout of one WGSL struct.
type wgslStructLayout struct {
	wgslTypeLayout
	// offsets maps member names to their byte offset.
	offsets map[string]uint64
}

// wgslPrimitiveLayoutMap maps the WGSL scalar, vector and matrix types the globe shader may
// use to their byte size and alignment.
//
// Reference: https://www.w3.org/TR/WGSL/#alignment-and-size
var wgslPrimitiveLayoutMap = map[string]wgslTypeLayout{
	"f32":  {4, 4},
	"i32":  {4, 4},
	"u32":  {4, 4},
	"bool": {4, 4},

	"vec2<f32>": {8, 8},
	"vec2f":     {8, 8},
	"vec3<f32>": {12, 16},
	"vec3f":     {12, 16},
	"vec4<f32>": {16, 16},
	"vec4f":     {16, 16},
	"vec2<u32>": {8, 8},
	"vec4<u32>": {16, 16},

	"mat3x3<f32>": {48, 16},
	"mat4x4<f32>": {64, 16},
}

var (
	// structBlockRegex matches struct Name { body }.
	structBlockRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	// fieldRegex matches an optionally attributed member declaration "name: type".
	fieldRegex = regexp.MustCompile(`^\s*((?:@\w+(?:\([^)]*\))?\s*)*)(\w+)\s*:\s*(.+?)\s*$`)
)

// roundUpAlign rounds value up to the next multiple of alignment (a power of two).
func roundUpAlign(alignment, value uint64) uint64 {
	if alignment == 0 {
		return value
	}
	return (value + alignment - 1) &^ (alignment - 1)
}

// stripLineComments removes // comments so they do not interfere with member parsing.
func stripLineComments(source string) string {
	var sb strings.Builder
	for line := range strings.SplitSeq(source, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// splitAtTopLevelCommas splits a struct body on commas outside <...>.
func splitAtTopLevelCommas(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// resolveTypeLayout resolves primitives, previously laid out structs and fixed-size arrays.
func resolveTypeLayout(typeName string, known map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	if layout, ok := wgslPrimitiveLayoutMap[typeName]; ok {
		return layout, true
	}
	if layout, ok := known[typeName]; ok {
		return layout, true
	}

	inner, ok := strings.CutPrefix(typeName, "array<")
	if !ok || !strings.HasSuffix(inner, ">") {
		return wgslTypeLayout{}, false
	}
	parts := strings.SplitN(inner[:len(inner)-1], ",", 2)
	if len(parts) != 2 {
		// Runtime-sized arrays are not valid in a uniform block.
		return wgslTypeLayout{}, false
	}
	elem, ok := resolveTypeLayout(strings.TrimSpace(parts[0]), known)
	if !ok {
		return wgslTypeLayout{}, false
	}
	count, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return wgslTypeLayout{}, false
	}
	// Uniform address space rounds array strides up to 16 bytes.
	stride := roundUpAlign(max(elem.align, 16), elem.size)
	return wgslTypeLayout{count * stride, max(elem.align, 16)}, true
}

// parseWGSLStructLayout computes the uniform-buffer layout of the named struct. Structs declared
// earlier in the source may be used as member types. Members with a @builtin attribute are skipped.
//
// Parameters:
//   - source: the WGSL source
//   - name: the struct to lay out
//
// Returns:
//   - wgslStructLayout: size, alignment and member offsets
//   - error: if the struct is missing or a member type cannot be resolved
func parseWGSLStructLayout(source, name string) (wgslStructLayout, error) {
	known := make(map[string]wgslTypeLayout)

	for _, match := range structBlockRegex.FindAllStringSubmatch(stripLineComments(source), -1) {
		structName, body := match[1], match[2]

		layout := wgslStructLayout{offsets: make(map[string]uint64)}
		offset, maxAlign := uint64(0), uint64(1)
		resolved := true
		for _, member := range splitAtTopLevelCommas(body) {
			if strings.TrimSpace(member) == "" {
				continue
			}
			fm := fieldRegex.FindStringSubmatch(member)
			if fm == nil {
				return wgslStructLayout{}, fmt.Errorf("struct %s: cannot parse member %q", structName, strings.TrimSpace(member))
			}
			if strings.Contains(fm[1], "@builtin") {
				continue
			}
			ml, ok := resolveTypeLayout(fm[3], known)
			if !ok {
				if structName == name {
					return wgslStructLayout{}, fmt.Errorf("struct %s: unsupported member type %q", structName, fm[3])
				}
				resolved = false
				break
			}
			offset = roundUpAlign(ml.align, offset)
			layout.offsets[fm[2]] = offset
			offset += ml.size
			maxAlign = max(maxAlign, ml.align)
		}
		if !resolved {
			continue
		}

		layout.align = maxAlign
		layout.size = roundUpAlign(maxAlign, offset)
		if structName == name {
			return layout, nil
		}
		known[structName] = layout.wgslTypeLayout
	}
	return wgslStructLayout{}, fmt.Errorf("struct %s not found", name)
}
