package obj

import (
	"bufio"
	"io"
	"strings"

	"github.com/Faultbox/learngl/internal/engine/scene"
)

// mtlMaps holds the texture map statements of one MTL material.
type mtlMaps map[scene.TextureSlot][]string

// mapSlots lists the MTL statements read for each slot.
var mapSlots = map[string]scene.TextureSlot{
	"map_kd":   scene.SlotDiffuse,
	"map_ks":   scene.SlotSpecular,
	"map_bump": scene.SlotNormal,
	"bump":     scene.SlotNormal,
	"norm":     scene.SlotNormal,
	"map_ke":   scene.SlotEmissive,
}

// parseMTLMaps collects texture maps per material name. Statement options such
// as "-bm 1" or "-s 1 1 1" are skipped; the file name is the final token.
func parseMTLMaps(r io.Reader) (map[string]mtlMaps, error) {
	out := make(map[string]mtlMaps)
	var current mtlMaps

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		keyword := strings.ToLower(fields[0])

		if keyword == "newmtl" {
			if len(fields) < 2 {
				current = nil
				continue
			}
			current = make(mtlMaps)
			out[strings.Join(fields[1:], " ")] = current
			continue
		}

		slot, ok := mapSlots[keyword]
		if !ok || current == nil || len(fields) < 2 {
			continue
		}
		current[slot] = append(current[slot], fields[len(fields)-1])
	}
	return out, sc.Err()
}

// findMTLLib returns the first mtllib file named in an OBJ stream.
func findMTLLib(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) >= 2 && fields[0] == "mtllib" {
			return strings.Join(fields[1:], " "), nil
		}
	}
	return "", sc.Err()
}
