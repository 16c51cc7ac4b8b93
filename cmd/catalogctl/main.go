package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	gojson "github.com/goccy/go-json"
	"github.com/joho/godotenv"

	catalog "github.com/tunefeed/catalog"
	"github.com/tunefeed/catalog/httpapi"
	"github.com/tunefeed/catalog/paginate"
	"github.com/tunefeed/catalog/tree"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	// Optional .env for API settings; absence is fine.
	_ = godotenv.Load()

	switch os.Args[1] {
	case "parse":
		parseCmd(os.Args[2:])
	case "browse":
		browseCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "catalogctl\n\nUsage:\n  catalogctl parse -f doc.json [-songs] [-v]\n  catalogctl browse -id FEmusic_home [-pages N] [-v]\n\nEnvironment (.env supported):\n  CATALOG_BASE_URL    API base URL (default "+httpapi.DefaultBaseURL+")\n  CATALOG_VISITOR_ID  opaque visitor id sent with each request")
}

func setupLog(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	return log
}

// parseCmd normalizes a captured response document from disk and prints the
// resulting sections as JSON.
func parseCmd(args []string) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	var file string
	var songs, verbose bool
	fs.StringVar(&file, "f", "", "document file (.json or .yaml)")
	fs.BoolVar(&songs, "songs", false, "treat the document as a flat song listing")
	fs.BoolVar(&verbose, "v", false, "debug logging")
	_ = fs.Parse(args)
	if file == "" {
		fs.Usage()
		os.Exit(2)
	}
	log := setupLog(verbose)

	data, err := os.ReadFile(file)
	if err != nil {
		fatalf("reading document: %v", err)
	}
	var doc tree.Value
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		doc, err = tree.FromYAML(data)
	default:
		doc, err = tree.Decode(data)
	}
	if err != nil {
		fatalf("decoding document: %v", err)
	}

	p := catalog.NewParser(catalog.WithLogger(log))
	var out any
	if songs {
		out = p.SongsPage(doc)
	} else {
		out = p.ParseInitialPage(doc)
	}
	printJSON(out)
}

// browseCmd drives client, parser and pagination session end to end against
// the live API.
func browseCmd(args []string) {
	fs := flag.NewFlagSet("browse", flag.ExitOnError)
	var browseID string
	var pages int
	var verbose bool
	fs.StringVar(&browseID, "id", httpapi.BrowseHome, "browse surface id")
	fs.IntVar(&pages, "pages", 1, "number of pages to load")
	fs.BoolVar(&verbose, "v", false, "debug logging")
	_ = fs.Parse(args)
	log := setupLog(verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []httpapi.ClientOption
	opts = append(opts, httpapi.WithLogger(log))
	if base := os.Getenv("CATALOG_BASE_URL"); base != "" {
		opts = append(opts, httpapi.WithBaseURL(base))
	}
	if vid := os.Getenv("CATALOG_VISITOR_ID"); vid != "" {
		opts = append(opts, httpapi.WithVisitorID(vid))
	}
	client := httpapi.NewClient(opts...)
	parser := catalog.NewParser(catalog.WithLogger(log))

	session := paginate.NewSession(
		client.SectionFetcher(parser, browseID),
		func(s catalog.Section) string { return s.ID },
		paginate.WithLogger[catalog.Section](log),
		paginate.WithPrefetchPages[catalog.Section](pages),
	)
	if err := session.Prefetch(ctx); err != nil {
		fatalf("browsing %s: %v", browseID, err)
	}
	printJSON(session.Items())
}

func printJSON(v any) {
	enc := gojson.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatalf("encoding output: %v", err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "catalogctl: "+format+"\n", args...)
	os.Exit(1)
}
