package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BeatGlow/kiosk/evdev"
)

func init() { rootCmd.AddCommand(devicesCmd) }

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "list input devices",
	Long:  `list input devices with their touch capabilities and touchscreen score`,
	Run: func(cmd *cobra.Command, args []string) {
		run(listDevices)
	},
}

func listDevices() error {
	d := evdev.Discoverer{AllowSingleTouch: singleTouchFlag}
	candidates, err := d.List()
	if err != nil {
		return wrap(err)
	}
	if len(candidates) == 0 {
		fmt.Println("no input devices found")
		return nil
	}

	best := -1
	for i, c := range candidates {
		if c.Err == nil && c.Score > 0 && (best < 0 || c.Score > candidates[best].Score) {
			best = i
		}
	}
	for i, c := range candidates {
		mark := " "
		if i == best {
			mark = "*"
		}
		if c.Err != nil {
			fmt.Printf("%s %s: %v\n", mark, c.Path, c.Err)
			continue
		}
		direct := ""
		if c.Direct {
			direct = " direct"
		}
		fmt.Printf("%s %s: %q score %d%s\n    %s\n", mark, c.Path, c.Name, c.Score, direct, c.Capabilities)
	}
	return nil
}
