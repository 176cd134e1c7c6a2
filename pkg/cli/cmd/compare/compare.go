/* Copyright 2025 Dnote Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package compare

import (
	"fmt"
	"time"

	"github.com/dnote/diffcheck/pkg/cli/cmd/root"
	"github.com/dnote/diffcheck/pkg/cli/context"
	"github.com/dnote/diffcheck/pkg/cli/infra"
	"github.com/dnote/diffcheck/pkg/cli/log"
	"github.com/dnote/diffcheck/pkg/cli/ui"
	"github.com/dnote/diffcheck/pkg/cli/utils"
	"github.com/dnote/diffcheck/pkg/compare"
	"github.com/dnote/diffcheck/pkg/render"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
)

var example = `
  * Compare two files
  diffcheck compare old.txt new.txt

  * Compare side by side, ignoring whitespace
  diffcheck compare -w --view side-by-side old.txt new.txt

  * Compare stdin against a file
  cat old.txt | diffcheck compare - new.txt

  * Print the unified diff
  diffcheck compare --raw old.txt new.txt > changes.patch

  * Compare again whenever one of the files changes
  diffcheck compare --watch old.txt new.txt`

// minInterval is the shortest polling interval of the watch mode
const minInterval = 10 * time.Millisecond

var (
	// ErrStdinTwice is an error for reading both texts from stdin
	ErrStdinTwice = errors.New("Only one of the texts can be read from stdin")
	// ErrWatchStdin is an error for watching stdin
	ErrWatchStdin = errors.New("Cannot watch stdin")
	// ErrIntervalTooShort is an error for a watch interval below minInterval
	ErrIntervalTooShort = errors.Errorf("The interval must be at least %s", minInterval)
)

type flags struct {
	ignoreWhitespace bool
	view             string
	raw              bool
	noColor          bool
	width            int
	watch            bool
	interval         time.Duration
}

// NewCmd returns a new compare command
func NewCmd(ctx context.DiffcheckCtx) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:     "compare <original> <changed>",
		Short:   "Compare two texts",
		Long:    "Compare two texts line by line. Use - to read one of them from stdin.\n\nThe exit status is 0 if the texts are identical, 1 if they differ and 2 if the comparison could not be made.",
		Aliases: []string{"c"},
		Example: example,
		Args:    cobra.ExactArgs(2),
		RunE:    newRun(ctx, &f),
	}

	fs := cmd.Flags()
	fs.BoolVarP(&f.ignoreWhitespace, "ignore-whitespace", "w", ctx.IgnoreWhitespace, "ignore the differences in whitespace")
	fs.StringVar(&f.view, "view", ctx.ViewMode, "view mode (line-by-line or side-by-side)")
	fs.BoolVar(&f.raw, "raw", false, "print the unified diff instead of rendering it")
	fs.BoolVar(&f.noColor, "no-color", ctx.NoColor, "disable colors")
	fs.IntVar(&f.width, "width", ctx.Width, "number of columns of the side-by-side view")
	fs.BoolVar(&f.watch, "watch", false, "compare again whenever one of the files changes")
	fs.DurationVar(&f.interval, "interval", 500*time.Millisecond, "polling interval of the watch mode")

	return cmd
}

func validateArgs(args []string, f flags) error {
	if args[0] == utils.StdinPath && args[1] == utils.StdinPath {
		return ErrStdinTwice
	}

	if f.watch {
		if args[0] == utils.StdinPath || args[1] == utils.StdinPath {
			return ErrWatchStdin
		}
		if f.interval < minInterval {
			return ErrIntervalTooShort
		}
	}

	return nil
}

func newComparer(ctx context.DiffcheckCtx, f flags) *compare.Comparer {
	c := compare.New(ctx.Limits)
	if ctx.Clock != nil {
		c.Clock = ctx.Clock
	}
	if !f.raw {
		c.Renderer = &render.Terminal{
			Width:   f.width,
			NoColor: f.noColor || color.NoColor,
			Inline:  true,
		}
	}
	if ctx.Stderr != nil {
		c.Busy = ui.NewSpinner(ctx.Stderr, "Comparing")
	}
	c.OnTransition = func(from, to compare.State) {
		log.Debug("transition %s -> %s\n", from, to)
	}

	return c
}

func run(cmd *cobra.Command, ctx context.DiffcheckCtx, f flags, c *compare.Comparer, mode render.ViewMode, args []string) error {
	original, err := utils.ReadInput(args[0], cmd.InOrStdin(), ctx.Limits.MaxBytes)
	if err != nil {
		return errors.Wrap(err, "reading the original text")
	}
	changed, err := utils.ReadInput(args[1], cmd.InOrStdin(), ctx.Limits.MaxBytes)
	if err != nil {
		return errors.Wrap(err, "reading the changed text")
	}

	res := c.Compare(compare.Request{
		Original:         original,
		Changed:          changed,
		IgnoreWhitespace: f.ignoreWhitespace,
		ViewMode:         mode,
	})
	log.Debug("compared in %s\n", res.Duration)

	return report(cmd, res, f.raw)
}

// report prints the result and returns the error determining the exit status
func report(cmd *cobra.Command, res compare.Result, raw bool) error {
	switch res.Status {
	case compare.StatusRejected:
		return res.Err
	case compare.StatusFailed:
		return errors.Wrap(res.Err, res.Message)
	case compare.StatusIdentical:
		log.Successf("%s\n", res.Message)
		return nil
	}

	// the header-only diff keeps --raw output a valid patch
	if raw {
		fmt.Fprint(cmd.OutOrStdout(), res.Unified)
		if len(res.Hunks) == 0 {
			return nil
		}

		return root.ExitError{Code: 1}
	}

	if len(res.Hunks) == 0 {
		log.Infof("the texts only differ in whitespace\n")
		return nil
	}

	out := res.Rendered
	if out == "" {
		out = res.Unified
	}
	fmt.Fprint(cmd.OutOrStdout(), out)

	return root.ExitError{Code: 1}
}

func newRun(ctx context.DiffcheckCtx, f *flags) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if err := validateArgs(args, *f); err != nil {
			return err
		}

		mode, err := render.ParseViewMode(f.view)
		if err != nil {
			return err
		}

		c := newComparer(ctx, *f)

		if !f.watch {
			return run(cmd, ctx, *f, c, mode, args)
		}

		return watch(cmd, ctx, *f, c, mode, args)
	}
}

// watch compares the files once and then again on every change until the
// command context is done
func watch(cmd *cobra.Command, ctx context.DiffcheckCtx, f flags, c *compare.Comparer, mode render.ViewMode, args []string) error {
	w := watcher.New()
	w.SetMaxEvents(1)
	w.FilterOps(watcher.Write, watcher.Create, watcher.Rename, watcher.Move)

	for _, path := range args {
		if err := w.Add(path); err != nil {
			return errors.Wrapf(err, "watching %s", path)
		}
	}

	started := make(chan error, 1)
	go func() {
		started <- w.Start(f.interval)
	}()
	w.Wait()

	defer func() {
		// the watcher blocks on unread events while closing
		go func() {
			for {
				select {
				case <-w.Event:
				case <-w.Closed:
					return
				}
			}
		}()
		w.Close()
	}()

	compareAndLog := func() {
		err := run(cmd, ctx, f, c, mode, args)

		var exitErr root.ExitError
		if err != nil && !errors.As(err, &exitErr) {
			log.Errorf("%s\n", err.Error())
		}
	}

	compareAndLog()

	done := cmd.Context().Done()
	for {
		select {
		case event := <-w.Event:
			log.Debug("event: %s\n", event)
			fmt.Fprintln(cmd.OutOrStdout())
			compareAndLog()
		case err := <-w.Error:
			return errors.Wrap(err, "watching")
		case err := <-started:
			return errors.Wrap(err, "watching")
		case <-done:
			return nil
		}
	}
}
