package cli

import (
	"context"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/lookerci/contentcheck/internal/content"
	"github.com/lookerci/contentcheck/internal/pipeline"
)

func newSpinner() *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionEnableColorCodes(true),
	)
}

// progressValidator shows a spinner while the content validator runs, which
// can take minutes on large instances.
type progressValidator struct {
	pipeline.Validator
	bar *progressbar.ProgressBar
}

func (p *progressValidator) ContentValidation(ctx context.Context) (*content.ValidationResult, error) {
	p.bar.Describe("running content validation")
	defer p.bar.Clear()
	return asyncProgressWait(func() (*content.ValidationResult, error) {
		return p.Validator.ContentValidation(ctx)
	}, p.bar, 100*time.Millisecond)
}

type asyncResult[T any] struct {
	out T
	err error
}

// asyncProgressWait runs fn in a goroutine and ticks bar until it returns.
// A nil bar just waits.
func asyncProgressWait[T any](fn func() (T, error), bar *progressbar.ProgressBar, tick time.Duration) (T, error) {
	done := make(chan asyncResult[T], 1)
	go func() {
		out, err := fn()
		done <- asyncResult[T]{out: out, err: err}
	}()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case r := <-done:
			return r.out, r.err
		case <-ticker.C:
			if bar != nil {
				bar.Add(1)
			}
		}
	}
}
