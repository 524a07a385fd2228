package clitest

import (
	"context"

	"src.elv.sh/rangebar/pkg/cli"
	"src.elv.sh/rangebar/pkg/cli/term"
)

// Fixture is a test fixture for an App running on a fake TTY.
type Fixture struct {
	App   cli.App
	TTY   TTYCtrl
	width int
	errCh <-chan error
}

// FixtureOpt configures the App and the fake TTY before the App runs.
type FixtureOpt func(*cli.AppSpec, TTYCtrl)

// WithSpec returns a FixtureOpt that calls f on the AppSpec.
func WithSpec(f func(*cli.AppSpec)) FixtureOpt {
	return func(spec *cli.AppSpec, _ TTYCtrl) { f(spec) }
}

// WithTTY returns a FixtureOpt that calls f on the TTYCtrl.
func WithTTY(f func(TTYCtrl)) FixtureOpt {
	return func(_ *cli.AppSpec, tty TTYCtrl) { f(tty) }
}

// Setup sets up a test fixture. It contains an App whose Run method has been
// started in a goroutine.
func Setup(fOpts ...FixtureOpt) *Fixture {
	return SetupContext(context.Background(), fOpts...)
}

// SetupContext is like Setup, but runs the App with the given context.
func SetupContext(ctx context.Context, fOpts ...FixtureOpt) *Fixture {
	tty, ttyCtrl := NewFakeTTY()
	spec := cli.AppSpec{TTY: tty}
	for _, fOpt := range fOpts {
		fOpt(&spec, ttyCtrl)
	}
	app := cli.NewApp(spec)
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run(ctx)
	}()
	_, width := tty.Size()
	return &Fixture{app, ttyCtrl, width, errCh}
}

// Wait waits for Run to finish, and returns its return value.
func (f *Fixture) Wait() error {
	return <-f.errCh
}

// Stop stops the App by aborting it, and waits for Run to finish.
func (f *Fixture) Stop() {
	f.App.Abort()
	f.Wait()
}

// BufferBuilder returns a BufferBuilder with the width of the fake TTY.
func (f *Fixture) BufferBuilder() *term.BufferBuilder {
	return term.NewBufferBuilder(f.width)
}
