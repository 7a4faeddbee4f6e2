package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli"

	"github.com/achilleasa/prism/colorspace"
	"github.com/achilleasa/prism/rgb2spec"
)

// GenerateTables fits RGB to spectrum coefficient tables and writes
// one binary asset per gamut.
func GenerateTables(ctx *cli.Context) error {
	setupLogging(ctx)

	res := ctx.Int("resolution")
	outDir := ctx.String("out")

	gamuts := colorspace.AllGamuts()
	if name := ctx.String("gamut"); name != "all" {
		g, err := colorspace.GamutByName(name)
		if err != nil {
			return err
		}
		gamuts = []colorspace.Gamut{g}
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("could not create output dir: %v", err)
	}

	for _, g := range gamuts {
		start := time.Now()
		table, err := rgb2spec.Build(g, res)
		if err != nil {
			return err
		}

		path := filepath.Join(outDir, rgb2spec.AssetName(g.Name(), res))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("could not create table file: %v", err)
		}
		if err = table.Encode(f); err != nil {
			f.Close()
			return err
		}
		if err = f.Close(); err != nil {
			return err
		}

		logger.Noticef("fitted %d^3 %s table in %s; wrote %s", res, g.Name(), time.Since(start), path)
	}
	return nil
}
