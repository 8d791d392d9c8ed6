package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yinyajiang/apod-gallery/pkg/config"
	"github.com/yinyajiang/apod-gallery/pkg/datasource"
	"github.com/yinyajiang/apod-gallery/pkg/ies"
	"github.com/yinyajiang/apod-gallery/pkg/page"
	"github.com/yinyajiang/apod-gallery/pkg/selector"
	"github.com/yinyajiang/apod-gallery/service/gallery"
)

var errCycleFailed = errors.New("gallery could not be loaded")

type flags struct {
	configFile   string
	dataURL      string
	mode         string
	start        string
	includeVideo bool
	oldestFirst  bool
	outDir       string
	proxy        string
	timeout      time.Duration
	youtubeKey   string
	verbose      bool
}

func (f *flags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.configFile, "config", "", "config file (default: first of config.toml, config.json, conf.json)")
	fs.StringVar(&f.dataURL, "url", "", "dataset URL (default "+datasource.DefaultURL+")")
	fs.StringVar(&f.mode, "mode", "", "selection mode: latest or range (default latest)")
	fs.StringVar(&f.start, "start", "", "first day of the range, YYYY-MM-DD; implies --mode range")
	fs.BoolVar(&f.includeVideo, "include-video", true, "let videos into the latest entries")
	fs.BoolVar(&f.oldestFirst, "oldest-first", false, "show the selection oldest first")
	fs.StringVar(&f.proxy, "proxy", "", "HTTP proxy for the dataset request")
	fs.DurationVar(&f.timeout, "timeout", 0, "dataset request timeout (default none)")
	fs.StringVar(&f.youtubeKey, "youtube-key", "", "YouTube Data API key for video thumbnails")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
}

// settings merges the config file with the flags that were set explicitly.
type settings struct {
	option  gallery.GalleryOption
	sel     selector.Options
	outDir  string
	verbose bool
}

func (f *flags) resolve(fs *pflag.FlagSet) (*settings, error) {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, err
	}

	pick := func(name, flagValue, cfgValue string) string {
		if fs.Changed(name) || cfgValue == "" {
			return flagValue
		}
		return cfgValue
	}

	s := &settings{
		outDir:  pick("out", f.outDir, cfg.OutDir),
		verbose: f.verbose || cfg.Verbose,
	}
	s.option = gallery.GalleryOption{
		DataURL: pick("url", f.dataURL, cfg.DataURL),
		Proxy:   pick("proxy", f.proxy, cfg.Proxy),
		Timeout: f.timeout,
		IEToken: cfg.Tokens,
	}
	if !fs.Changed("timeout") && cfg.Timeout.Duration > 0 {
		s.option.Timeout = cfg.Timeout.Duration
	}
	if fs.Changed("youtube-key") {
		tokens := ies.IETokens{}
		for name, token := range cfg.Tokens {
			tokens[name] = token
		}
		tokens["youtube"] = f.youtubeKey
		s.option.IEToken = tokens
	}

	start := pick("start", f.start, cfg.Start)
	mode, err := selector.ParseMode(pick("mode", f.mode, cfg.Mode))
	if err != nil {
		return nil, err
	}
	if start != "" && !fs.Changed("mode") && cfg.Mode == "" {
		mode = selector.ModeRange
	}
	s.sel = selector.Options{
		Mode:         mode,
		IncludeVideo: f.includeVideo,
		OldestFirst:  f.oldestFirst || (!fs.Changed("oldest-first") && cfg.OldestFirst),
	}
	if !fs.Changed("include-video") && cfg.IncludeVideo != nil {
		s.sel.IncludeVideo = *cfg.IncludeVideo
	}
	if start != "" {
		if s.sel.Start, err = selector.ParseStart(start); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func setupLogging(verbose bool) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

func newBuildCommand() *cobra.Command {
	f := &flags{}
	command := &cobra.Command{
		Use:   "build",
		Short: "Fetch the APOD dataset and write the gallery site",
		Long: `
Fetches the dataset once, selects the entries to show and writes index.html
plus one detail page per entry into the output directory.

When the dataset cannot be loaded the index still gets written, carrying the
error message, and the command exits with status 1.
`,
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			s, err := f.resolve(command.Flags())
			if err != nil {
				return err
			}
			setupLogging(s.verbose)

			g, err := gallery.NewGallery(s.option)
			if err != nil {
				return err
			}
			res := g.Load(command.Context(), s.sel)
			if err := g.WriteSite(s.outDir); err != nil {
				return err
			}
			fmt.Fprintf(command.OutOrStdout(), "%s: %d entries written to %s\n", res.Status, len(res.Records), s.outDir)
			if res.Status == gallery.StatusError {
				// the cause is already logged by the cycle
				return errCycleFailed
			}
			return nil
		},
	}
	f.register(command.Flags())
	command.Flags().StringVarP(&f.outDir, "out", "o", "site", "output directory")
	return command
}

func newListCommand() *cobra.Command {
	f := &flags{}
	command := &cobra.Command{
		Use:   "list",
		Short: "Print the entries the gallery would show",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			s, err := f.resolve(command.Flags())
			if err != nil {
				return err
			}
			setupLogging(s.verbose)

			source, err := datasource.New(datasource.Options{
				URL:     s.option.DataURL,
				Proxy:   s.option.Proxy,
				Timeout: s.option.Timeout,
			})
			if err != nil {
				return err
			}
			records, err := source.Fetch(command.Context())
			if err != nil {
				return err
			}
			selected, err := selector.Select(records, s.sel, time.Now())
			if err != nil {
				return err
			}
			out := command.OutOrStdout()
			if len(selected) == 0 {
				fmt.Fprintln(out, page.MsgEmpty)
				return nil
			}
			for _, rec := range selected {
				fmt.Fprintf(out, "%s  %-5s  %s\n", rec.Date, rec.MediaType, rec.Title)
			}
			return nil
		},
	}
	f.register(command.Flags())
	return command
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "apodgallery",
		Short:         "Build a gallery of NASA's Astronomy Picture of the Day",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newBuildCommand(), newListCommand())
	return root
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cancel()
		os.Exit(1)
	}
}
