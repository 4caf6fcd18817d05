// Command kiosk exercises a framebuffer display and its touchscreen.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          filepath.Base(os.Args[0]),
	Short:        "kiosk framebuffer and touchscreen tool",
	Long:         "kiosk draws on a Linux framebuffer and reads its touchscreen, without a display server",
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
		os.Exit(1)
	},
}

var (
	debugFlag       bool
	fbFlag          string
	inputFlag       string
	rotateFlag      string
	backlightFlag   string
	brightnessFlag  uint8
	singleTouchFlag bool
	queueFlag       int
)

func init() {
	cobra.EnablePrefixMatching = true
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&debugFlag, `debug`, false, `debug errors`)
	flags.StringVar(&fbFlag, `fb`, `/dev/fb0`, `framebuffer device`)
	flags.StringVar(&inputFlag, `input`, ``, `touchscreen event device (default: discover)`)
	flags.StringVar(&rotateFlag, `rotate`, ``, `touchscreen rotation relative to the display (0, 90, 180, 270, right, left, flip)`)
	flags.StringVar(&backlightFlag, `backlight`, ``, `backlight GPIO pin, such as GPIO18`)
	flags.Uint8Var(&brightnessFlag, `brightness`, 0xff, `backlight brightness, dimmed with PWM below 255`)
	flags.BoolVar(&singleTouchFlag, `single-touch`, false, `accept single-touch devices when discovering the touchscreen`)
	flags.IntVar(&queueFlag, `queue`, 0, `read touch events in a separate goroutine through a queue of this size`)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(fn func() error) {
	err := fn()
	if err == nil {
		return
	}
	if stackFramer, ok := err.(interface{ ErrorStack() string }); debugFlag && ok {
		fmt.Fprintln(os.Stderr, stackFramer.ErrorStack())
		os.Exit(1)
	}
	log.Fatal(err)
}

// wrap attaches a stack trace to err.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, 1)
}
