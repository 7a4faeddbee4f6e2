package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/achilleasa/prism/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "prism"
	app.Usage = "render scenes using spectral path tracing"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a still frame",
			Description: `
Render a TOML scene description into a PNG image using spectral path
tracing. Pass "cornell-box" as the scene argument to render the
built-in box scene.`,
			ArgsUsage: "scene.toml",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 512,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 512,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 16,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "num-bounces",
					Value: 5,
					Usage: "number of indirect bounces",
				},
				cli.IntFlag{
					Name:  "rr-bounces",
					Value: 0,
					Usage: "min bounces before applying RR for path elimination (disabled if 0)",
				},
				cli.Float64Flag{
					Name:  "exposure",
					Value: 1.0,
					Usage: "camera exposure for tone-mapping",
				},
				cli.StringFlag{
					Name:  "tone-map",
					Value: "reinhard",
					Usage: "tone map applied while developing pixels",
				},
				cli.StringFlag{
					Name:  "gamut",
					Value: "srgb",
					Usage: "output gamut",
				},
				cli.StringFlag{
					Name:  "transfer-func",
					Value: "srgb",
					Usage: "transfer function encoding output pixels",
				},
				cli.Float64Flag{
					Name:  "secondary-termination",
					Value: 0.0,
					Usage: "probability of collapsing a path to its primary hero wavelength at each bounce",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "number of render workers; 0 selects one per logical CPU",
				},
				cli.IntFlag{
					Name:  "seed",
					Value: 0,
					Usage: "seed for the sample streams",
				},
				cli.StringFlag{
					Name:  "table-dir",
					Usage: "directory or URL prefix with prefitted rgb2spec tables",
				},
				cli.IntFlag{
					Name:  "table-res",
					Value: 64,
					Usage: "resolution of the prefitted rgb2spec tables",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:  "rgb2spec",
			Usage: "fit RGB to spectrum coefficient tables",
			Description: `
Fit the sigmoid polynomial coefficient tables used to upsample RGB
colors into reflectance spectra and write one binary asset per gamut.
The render command picks these up via --table-dir instead of fitting
coarse tables on first use.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "resolution, r",
					Value: 64,
					Usage: "table resolution per channel",
				},
				cli.StringFlag{
					Name:  "gamut, g",
					Value: "all",
					Usage: "gamut to fit tables for, or 'all'",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "assets",
					Usage: "output directory for table assets",
				},
			},
			Action: cmd.GenerateTables,
		},
		{
			Name:   "info",
			Usage:  "inspect scenes and supported color spaces",
			Action: nil,
			Subcommands: []cli.Command{
				{
					Name:      "scene",
					Usage:     "print a breakdown of a scene description",
					ArgsUsage: "scene.toml",
					Action:    cmd.ShowSceneInfo,
				},
				{
					Name:   "colorspaces",
					Usage:  "list supported gamuts, tone maps and transfer functions",
					Action: cmd.ListColorSpaces,
				},
			},
		},
	}

	app.Run(os.Args)
}
