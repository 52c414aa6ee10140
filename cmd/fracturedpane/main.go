package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/katalvlaran/fracturedpane/fracture"
	"github.com/katalvlaran/fracturedpane/internal/api"
	"github.com/katalvlaran/fracturedpane/internal/config"
	"github.com/katalvlaran/fracturedpane/pathcode"
	"github.com/katalvlaran/fracturedpane/render"
	"github.com/katalvlaran/fracturedpane/taxonomy"
)

func main() {
	cfg := config.Load()

	var (
		in          = flag.String("in", "", "taxonomy file (.csv, .md, .html, .json); built-in sample if empty")
		format      = flag.String("format", "svg", "output format: svg or json")
		out         = flag.String("out", "", "output file; stdout if empty")
		seed        = flag.Int64("seed", cfg.Seed, "random seed")
		showUnnamed = flag.Bool("show-unnamed", cfg.ShowUnnamed, "draw regions without a concept")
		shuffle     = flag.Bool("shuffle", false, "shuffle relations with the seed before encoding")
		serve       = flag.Bool("serve", false, "run the HTTP API instead")
		verbose     = flag.Bool("v", false, "log every emitted region")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg.Seed = *seed
	cfg.ShowUnnamed = *showUnnamed
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if *serve {
		if err := runServer(log, cfg); err != nil {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := run(log, cfg, *in, *format, *out, *shuffle); err != nil {
		log.Error("fracture failed", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, cfg config.Config, in, format, out string, shuffle bool) error {
	if format != "svg" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}

	rels := taxonomy.Sample()
	if in != "" {
		var err error
		if rels, err = taxonomy.ReadFile(in); err != nil {
			return err
		}
	}
	if shuffle {
		rels = taxonomy.Shuffle(rels, rand.New(rand.NewSource(cfg.Seed)))
	}

	tbl, err := pathcode.Build(rels)
	if err != nil {
		return err
	}
	log.Info("encoded", "relations", len(rels), "concepts", tbl.Len())

	opts := append(cfg.FractureOptions(),
		fracture.WithOnVisit(func(r fracture.Region) error {
			log.Debug("region", "path", r.Path, "concept", r.Concept, "vertices", len(r.Boundary)-1)
			return nil
		}),
	)
	regions, err := fracture.Fracture(tbl, opts...)
	if err != nil {
		return err
	}
	log.Info("fractured", "regions", len(regions), "seed", cfg.Seed)

	if out == "" {
		return write(os.Stdout, format, regions, cfg)
	}
	f, err := create(out)
	if err != nil {
		return err
	}
	if err = write(f, format, regions, cfg); err != nil {
		f.Close()
		return err
	}
	// Close can fail after every Write succeeded.
	if err = f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}
	log.Info("wrote", "path", out, "format", format)
	return nil
}

// create opens the output file.
var create = func(name string) (io.WriteCloser, error) { return os.Create(name) }

func write(w io.Writer, format string, regions []fracture.Region, cfg config.Config) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(regions)
	}
	return render.SVG(w, regions, cfg.RenderOptions()...)
}

func runServer(log *slog.Logger, cfg config.Config) error {
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewServer(log, cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting fracturedpane", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
