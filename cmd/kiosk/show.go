package main

import (
	"errors"
	"log"
	"os"

	errorsGo "github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/BeatGlow/kiosk/asset"
)

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVar(&modeFlag, `mode`, asset.Fit.String(), `scaling mode (fit, fill, stretch, original)`)
	showCmd.Flags().BoolVar(&blendFlag, `blend`, false, `blend translucent images over the current screen instead of black`)
}

var showCmd = &cobra.Command{
	Use:   showCmdStr + " /path/to/image.png",
	Short: "display image",
	Long:  `display an image file centered on the framebuffer`,
	Run: func(cmd *cobra.Command, args []string) {
		run(func() error { return show(args) })
	},
}

var (
	showCmdStr = "show"
	modeFlag   string
	blendFlag  bool
)

var errShowUsage = errors.New(`usage: ` + os.Args[0] + ` ` + showCmdStr + ` /path/to/image.png`)

func show(args []string) error {
	if len(args) != 1 {
		return errorsGo.New(errShowUsage)
	}
	mode, err := asset.ParseMode(modeFlag)
	if err != nil {
		return wrap(err)
	}

	d, err := openDisplay()
	if err != nil {
		return err
	}
	defer d.Close()

	r := d.Bounds()
	bm, err := asset.Load(args[0], r.Dx(), r.Dy(), mode)
	if err != nil {
		return wrap(err)
	}
	log.Printf("showing %s scaled to %dx%d (%s)", args[0], bm.Width, bm.Height, mode)

	if !blendFlag {
		if err = d.Clear(); err != nil {
			return wrap(err)
		}
	}
	x, y := (r.Dx()-bm.Width)/2, (r.Dy()-bm.Height)/2
	return wrap(d.DrawImage(x, y, bm, true))
}
