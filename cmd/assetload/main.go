// Command assetload loads the resources listed in a YAML manifest and
// reports what each one turned into.
//
// Usage:
//
//	assetload [-v] [-out dir] [-base url] [-j n] manifest.yaml
//
// Textures are written as PNG files to -out when it is set.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/gogpu/assets"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "assetload: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		verbose     = flag.Bool("v", false, "enable debug logging")
		outDir      = flag.String("out", "", "directory to write textures to as PNG")
		baseURL     = flag.String("base", "", "base URL for relative resource URLs (overrides manifest)")
		concurrency = flag.Int("j", 0, "items loaded at once (overrides manifest)")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return fmt.Errorf("expected one manifest path")
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	assets.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	m, err := readManifest(flag.Arg(0))
	if err != nil {
		return err
	}
	if *baseURL != "" {
		m.BaseURL = *baseURL
	}
	if *concurrency > 0 {
		m.Concurrency = *concurrency
	}

	pb := progressbar.Default(int64(len(m.Resources)), "loading")
	defer pb.Close()

	l := assets.NewLoader(
		assets.WithBaseURL(m.BaseURL),
		assets.WithConcurrency(m.Concurrency),
		assets.WithProgress(func(*assets.Loader, *assets.Resource, int, int) {
			_ = pb.Add(1)
		}),
	)
	if err := m.queue(l); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	resources, loadErr := l.LoadWait(ctx)
	if resources == nil {
		return loadErr
	}
	_ = pb.Finish()

	for _, name := range slices.Sorted(maps.Keys(resources)) {
		fmt.Println(describe(resources[name]))
	}

	if *outDir != "" {
		if err := writeTextures(*outDir, resources); err != nil {
			return err
		}
	}
	if loadErr != nil {
		return fmt.Errorf("some resources failed to load")
	}
	return nil
}

// describe returns a one-line summary of res.
func describe(res *assets.Resource) string {
	if err := res.Err(); err != nil {
		return fmt.Sprintf("%-20s %-9s %v", res.Name, res.State(), err)
	}
	if tex := res.Texture; tex != nil {
		bt := tex.BaseTexture()
		return fmt.Sprintf("%-20s %-9s %s %dx%d @%gx %s", res.Name, res.State(), res.Kind,
			bt.RealWidth(), bt.RealHeight(), bt.Resolution(), bt.ScaleMode())
	}
	return fmt.Sprintf("%-20s %-9s %s %d bytes", res.Name, res.State(), res.Kind, len(res.Bytes()))
}

// writeTextures saves every texture in resources as <dir>/<name>.png.
func writeTextures(dir string, resources map[string]*assets.Resource) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	for name, res := range resources {
		if res.Texture == nil {
			continue
		}
		img := res.Texture.BaseTexture().Resource().Image()
		if img == nil {
			continue
		}

		file := filepath.Join(dir, sanitize(name)+".png")
		f, err := os.Create(file)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", file, err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return fmt.Errorf("failed to encode %s: %w", file, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		assets.Logger().Debug("wrote texture", "file", file)
	}
	return nil
}

// sanitize turns a resource name into a flat file name.
func sanitize(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '?', '*', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
