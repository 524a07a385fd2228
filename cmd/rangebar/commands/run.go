package commands

import (
	"context"
	"fmt"
	"strconv"

	"src.elv.sh/rangebar/pkg/cli"
	"src.elv.sh/rangebar/pkg/cli/term"
	"src.elv.sh/rangebar/pkg/cli/tk"
	"src.elv.sh/rangebar/pkg/config"
	"src.elv.sh/rangebar/pkg/rangedata"
	"src.elv.sh/rangebar/pkg/rangesel"
	"src.elv.sh/rangebar/pkg/store"
	"src.elv.sh/rangebar/pkg/ui"
)

// Resolves the domain, runs the selector and prints the selected range.
func (o *options) run(ctx context.Context, env Env, kind rangedata.Kind, src config.Source) error {
	defer o.profiles.Start(env.Stderr)()
	tty, err := env.OpenTTY()
	if err != nil {
		return err
	}
	styles, err := o.cfg.Styles.Parse()
	if err != nil {
		return err
	}
	d, err := o.domain(ctx, kind, src)
	if err != nil {
		logger.Errorf("get %s range: %v", kind, err)
		fmt.Fprintf(env.Stderr, "Something went wrong: %v\n", err)
		return errReported
	}

	st, err := selectRange(ctx, tty, kind, d, styles)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Stdout, formatFloat(st.Low.Value), formatFloat(st.High.Value))
	return nil
}

func (o *options) domain(ctx context.Context, kind rangedata.Kind, src config.Source) (rangesel.Domain, error) {
	if d, ok, err := src.Inline(kind); ok {
		return d, err
	}
	if kind == rangedata.Normal && src.IsZero() {
		return rangesel.NewContinuous(config.DefaultMin, config.DefaultMax)
	}

	f := &rangedata.Fetcher{Timeout: o.cfg.Fetch.Timeout, Retries: o.cfg.Fetch.Retries}
	if o.cfg.CachePath != "" {
		st, err := store.NewStore(o.cfg.CachePath)
		if err != nil {
			logger.Warnf("cache unavailable: %v", err)
		} else {
			defer st.Close()
			f.Cache = st
		}
	}
	return f.Fetch(ctx, kind, src.Data())
}

func selectRange(ctx context.Context, tty cli.TTY, kind rangedata.Kind, d rangesel.Domain, styles tk.RangeBarStyles) (rangesel.State, error) {
	var app cli.App
	var bar tk.RangeBar
	accept := func(tk.Widget) { app.Accept() }
	abort := func(tk.Widget) { app.Abort() }
	app = cli.NewApp(cli.AppSpec{
		TTY:    tty,
		Header: header(kind),
		Widget: func(a cli.App) tk.Widget {
			bar = tk.NewRangeBar(tk.RangeBarSpec{
				Domain: d, Host: a, Styles: styles,
				OnChange: func(rangesel.State) { a.Redraw() },
			})
			return bar
		},
		GlobalBindings: tk.MapBindings{
			term.K(ui.Enter):     accept,
			term.K('q'):          abort,
			term.K('D', ui.Ctrl): abort,
			term.K('C', ui.Ctrl): abort,
			term.K('[', ui.Ctrl): abort,
		},
	})
	defer bar.Close()

	if err := app.Run(ctx); err != nil {
		return rangesel.State{}, err
	}
	return bar.Controller().State(), nil
}

func header(kind rangedata.Kind) ui.Text {
	title := "Normal range"
	if kind == rangedata.Fixed {
		title = "Fixed range"
	}
	return ui.Concat(
		ui.T(title, ui.Bold),
		ui.T("  Enter accept, q quit", ui.FgBrightBlack))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
