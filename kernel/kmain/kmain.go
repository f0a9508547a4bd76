package kmain

import (
	"context"
	"fbcon/device/video/console"
	"fbcon/kernel/hal"
	"fbcon/kernel/kfmt"
	"time"
)

var (
	// initConsoleFn is mocked by tests.
	initConsoleFn = hal.InitConsole
)

// Kmain is invoked by the boot code once the bootloader-supplied framebuffer
// information and command line have been collected. It sets up the console,
// prints a banner and then presents pending console output each time a value
// is received from ticks (e.g. a timer interrupt) until ctx is done.
//
// The returned error is either the console initialization error or the
// context error.
func Kmain(ctx context.Context, fbInfo *hal.FramebufferInfo, cmdLine string, ticks <-chan time.Time) error {
	cons, err := initConsoleFn(fbInfo, cmdLine)
	if err != nil {
		return err
	}

	cols, rows := cons.Dimensions(console.Characters)
	kfmt.Printf("[kmain] %dx%d text console ready\n", cols, rows)

	return cons.Run(ctx, ticks)
}
