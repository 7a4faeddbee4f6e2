package cmd

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/achilleasa/prism/scene"
)

// ShowSceneInfo loads a scene description and prints a breakdown of
// its contents.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	logger.Noticef("camera: position %v looking at %v with a %v degree fov",
		sc.Camera.Position, sc.Camera.LookAt, sc.Camera.FOV)
	if sc.Background != nil {
		logger.Notice("background: emissive")
	} else {
		logger.Notice("background: black")
	}

	type group struct {
		shape    string
		material string
	}
	counts := make(map[group]int)
	for _, prim := range sc.Primitives {
		switch p := prim.(type) {
		case *scene.Sphere:
			counts[group{"sphere", materialName(p.Mat)}]++
		case *scene.Quad:
			counts[group{"quad", materialName(p.Mat)}]++
		default:
			counts[group{fmt.Sprintf("%T", prim), ""}]++
		}
	}

	groups := make([]group, 0, len(counts))
	for g := range counts {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].shape != groups[j].shape {
			return groups[i].shape < groups[j].shape
		}
		return groups[i].material < groups[j].material
	})

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Shape", "Material", "Count"})
	for _, g := range groups {
		table.Append([]string{g.shape, g.material, fmt.Sprintf("%d", counts[g])})
	}
	table.SetFooter([]string{"", "TOTAL", fmt.Sprintf("%d", len(sc.Primitives))})

	table.Render()
	logger.Noticef("scene contents\n%s", buf.String())
	return nil
}

func materialName(m scene.Material) string {
	switch m.(type) {
	case *scene.Lambert:
		return "lambert"
	case *scene.Emissive:
		return "emissive"
	case *scene.Metal:
		return "metal"
	case *scene.Dielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("%T", m)
	}
}
