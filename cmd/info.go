package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/achilleasa/prism/colorspace"
	"github.com/achilleasa/prism/types"
)

// ListColorSpaces prints the supported gamuts together with the
// available tone maps and transfer functions.
func ListColorSpaces(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Gamut", "Red xy", "Green xy", "Blue xy", "White xy"})
	for _, g := range colorspace.AllGamuts() {
		p := g.Primaries()
		table.Append([]string{
			g.Name(),
			fmtChromaticity(p.Red),
			fmtChromaticity(p.Green),
			fmtChromaticity(p.Blue),
			fmtChromaticity(p.White),
		})
	}

	table.Render()
	logger.Noticef("supported gamuts\n%s", buf.String())

	names := make([]string, 0)
	for _, tm := range colorspace.AllToneMaps() {
		names = append(names, tm.Name())
	}
	logger.Noticef("supported tone maps: %s", strings.Join(names, ", "))

	names = names[:0]
	for _, tf := range colorspace.AllTransferFuncs() {
		names = append(names, tf.Name())
	}
	logger.Noticef("supported transfer functions: %s", strings.Join(names, ", "))
	return nil
}

func fmtChromaticity(v types.Vec2) string {
	return fmt.Sprintf("(%.4f, %.4f)", v[0], v[1])
}
