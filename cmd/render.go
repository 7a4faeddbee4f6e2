package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/achilleasa/prism/colorspace"
	"github.com/achilleasa/prism/renderer"
	"github.com/achilleasa/prism/rgb2spec"
	"github.com/achilleasa/prism/scene"
)

// Scene argument that selects the built-in box scene.
const builtinCornellBox = "cornell-box"

// RenderFrame renders a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := renderer.Options{
		FrameW:               uint32(ctx.Int("width")),
		FrameH:               uint32(ctx.Int("height")),
		SamplesPerPixel:      uint32(ctx.Int("spp")),
		Exposure:             float32(ctx.Float64("exposure")),
		NumBounces:           uint32(ctx.Int("num-bounces")),
		MinBouncesForRR:      uint32(ctx.Int("rr-bounces")),
		SecondaryTermination: float32(ctx.Float64("secondary-termination")),
		NumWorkers:           uint32(ctx.Int("workers")),
		Seed:                 int64(ctx.Int("seed")),
	}

	if opts.MinBouncesForRR == 0 || opts.MinBouncesForRR >= opts.NumBounces {
		logger.Notice("disabling RR for path elimination")
		opts.MinBouncesForRR = opts.NumBounces + 1
	}

	var err error
	if opts.ToneMap, err = colorspace.ToneMapByName(ctx.String("tone-map")); err != nil {
		return err
	}

	// Preload fitted coefficient tables when an asset location is
	// given; anything missing is fitted in process on first use.
	if base := ctx.String("table-dir"); base != "" {
		res := ctx.Int("table-res")
		for _, g := range colorspace.AllGamuts() {
			if err = rgb2spec.LoadAsset(base, g, res); err != nil {
				logger.Warningf("%v", err)
			}
		}
	}

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	img, stats, err := renderScene(ctx.String("gamut"), ctx.String("transfer-func"), sc, opts)
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if err = writePNG(out, img); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s", out)

	displayFrameStats(stats)
	return nil
}

func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	if ctx.NArg() != 1 {
		return nil, errors.New("missing scene file argument")
	}
	if ctx.Args().First() == builtinCornellBox {
		return scene.CornellBox(), nil
	}
	return scene.Load(ctx.Args().First())
}

// renderScene instantiates the render pipeline for the selected
// output gamut and transfer function.
func renderScene(gamut, transfer string, sc *scene.Scene, opts renderer.Options) (*image.NRGBA, renderer.FrameStats, error) {
	switch gamut {
	case "srgb":
		return renderEncoded[colorspace.SRGB](transfer, sc, opts)
	case "dci-p3-d65":
		return renderEncoded[colorspace.DCIP3D65](transfer, sc, opts)
	case "adobe-rgb":
		return renderEncoded[colorspace.AdobeRGB](transfer, sc, opts)
	case "rec-2020":
		return renderEncoded[colorspace.Rec2020](transfer, sc, opts)
	case "aces-cg":
		return renderEncoded[colorspace.ACEScg](transfer, sc, opts)
	case "aces-2065-1":
		return renderEncoded[colorspace.ACES20651](transfer, sc, opts)
	default:
		return nil, renderer.FrameStats{}, fmt.Errorf("unsupported gamut %q", gamut)
	}
}

func renderEncoded[G colorspace.Gamut](transfer string, sc *scene.Scene, opts renderer.Options) (*image.NRGBA, renderer.FrameStats, error) {
	switch transfer {
	case "linear":
		return renderer.Render[G, colorspace.LinearTF](sc, opts)
	case "srgb":
		return renderer.Render[G, colorspace.SRGBCurve](sc, opts)
	case "rec-709":
		return renderer.Render[G, colorspace.Rec709Curve](sc, opts)
	case "gamma-2.2":
		return renderer.Render[G, colorspace.Gamma22](sc, opts)
	case "gamma-2.4":
		return renderer.Render[G, colorspace.Gamma24](sc, opts)
	case "gamma-2.6":
		return renderer.Render[G, colorspace.Gamma26](sc, opts)
	case "adobe-rgb":
		return renderer.Render[G, colorspace.AdobeRGBCurve](sc, opts)
	default:
		return nil, renderer.FrameStats{}, fmt.Errorf("unsupported transfer function %q", transfer)
	}
}

func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create output file: %v", err)
	}
	defer f.Close()

	if err = png.Encode(f, img); err != nil {
		return fmt.Errorf("could not encode png: %v", err)
	}
	return nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Rows", "% of frame", "Render time"})
	for _, stat := range stats.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", stat.Id),
			fmt.Sprintf("%d", stat.Rows),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			fmt.Sprintf("%s", stat.RenderTime),
		})
	}
	table.SetFooter([]string{"", "", "TOTAL", fmt.Sprintf("%s", stats.RenderTime)})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
