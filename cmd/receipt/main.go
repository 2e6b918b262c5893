package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/receipt-printer/internal/catalog"
	"github.com/zombor/receipt-printer/internal/receipt"
	"github.com/zombor/receipt-printer/internal/scanning"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	cmd := newRootCommand(os.Stdin, os.Stdout)
	os.Exit(run(context.Background(), cmd, os.Args[1:], os.Stderr))
}

// run parses and executes cmd, returning the process exit code. Help is only
// printed when the arguments could not be parsed or no subcommand was given.
func run(ctx context.Context, cmd *ff.Command, args []string, stderr io.Writer) int {
	if err := cmd.Parse(args, ff.WithEnvVarPrefix("RECEIPT")); err != nil {
		printHelp(cmd, stderr)
		if !errors.Is(err, ff.ErrHelp) {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}

	if err := cmd.Run(ctx); err != nil {
		if errors.Is(err, ff.ErrHelp) {
			printHelp(cmd, stderr)
			return 1
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func printHelp(cmd *ff.Command, w io.Writer) {
	selected := cmd.GetSelected()
	if selected == nil {
		selected = cmd
	}
	fmt.Fprintf(w, "%s\n", ffhelp.Command(selected))
}

// app holds the flag values shared by every subcommand
type app struct {
	dbPath     *string
	catalogDir *string
	debug      *bool
	scanner    scanning.Scanner
	stdin      io.Reader
	stdout     io.Writer
}

func newRootCommand(stdin io.Reader, stdout io.Writer) *ff.Command {
	fs := ff.NewFlagSet("receipt")
	a := &app{
		dbPath:     fs.StringLong("db", "", "Catalog database file path (empty uses --catalog or the bundled catalog)"),
		catalogDir: fs.StringLong("catalog", "", "Directory with items.json and promotions.json"),
		debug:      fs.BoolLong("debug", "Enable debug logging"),
		scanner:    scanning.NewLineScanner(),
		stdin:      stdin,
		stdout:     stdout,
	}
	_ = fs.BoolLong("version", "Show version information")

	printFlags := ff.NewFlagSet("print").SetParent(fs)
	tagsFile := printFlags.StringLong("tags-file", "", "Read tags from this file instead of arguments or stdin")

	importFlags := ff.NewFlagSet("import").SetParent(fs)
	importFrom := importFlags.StringLong("from", "", "Directory to import (empty imports the bundled catalog)")

	return &ff.Command{
		Name:      "receipt",
		Usage:     "receipt [FLAGS] <SUBCOMMAND> ...",
		ShortHelp: "print shopping receipts from scanned tags",
		Flags:     fs,
		Exec: func(ctx context.Context, args []string) error {
			return ff.ErrHelp
		},
		Subcommands: []*ff.Command{
			{
				Name:      "print",
				Usage:     "receipt print [FLAGS] [TAG ...]",
				ShortHelp: "print the receipt for the given tags",
				Flags:     printFlags,
				Exec: func(ctx context.Context, args []string) error {
					return a.print(args, *tagsFile)
				},
			},
			{
				Name:      "import",
				Usage:     "receipt import --db FILE [--from DIR]",
				ShortHelp: "load a catalog directory into the database",
				Flags:     importFlags,
				Exec: func(ctx context.Context, args []string) error {
					return a.importCatalog(*importFrom)
				},
			},
			{
				Name:      "items",
				Usage:     "receipt items [FLAGS] [BARCODE ...]",
				ShortHelp: "list catalog items, or only the given barcodes",
				Flags:     ff.NewFlagSet("items").SetParent(fs),
				Exec: func(ctx context.Context, args []string) error {
					return a.listItems(args)
				},
			},
			{
				Name:      "promotions",
				ShortHelp: "list promotions",
				Flags:     ff.NewFlagSet("promotions").SetParent(fs),
				Exec: func(ctx context.Context, args []string) error {
					return a.listPromotions()
				},
			},
		},
	}
}

func (a *app) setupLogging() {
	level := slog.LevelInfo
	if *a.debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// openSource picks the catalog source from the flags. The returned close
// function must be called once the source is no longer needed.
func (a *app) openSource() (catalog.Source, func(), error) {
	a.setupLogging()

	switch {
	case *a.dbPath != "":
		slog.Debug("Opening catalog database", "path", *a.dbPath)
		db, err := catalog.NewBoltDB(*a.dbPath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	case *a.catalogDir != "":
		slog.Debug("Reading catalog directory", "path", *a.catalogDir)
		src, err := catalog.NewFileSource(*a.catalogDir)
		if err != nil {
			return nil, nil, err
		}
		return src, func() {}, nil
	default:
		return catalog.Defaults(), func() {}, nil
	}
}

func (a *app) print(args []string, tagsFile string) error {
	tags, err := a.readTags(args, tagsFile)
	if err != nil {
		return err
	}

	source, closeSource, err := a.openSource()
	if err != nil {
		return err
	}
	defer closeSource()

	cached := catalog.NewCached(source)
	text, err := receipt.NewService(cached, cached).PrintReceipt(tags)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, text)
	return nil
}

func (a *app) readTags(args []string, tagsFile string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	in := a.stdin
	if tagsFile != "" {
		f, err := os.Open(tagsFile)
		if err != nil {
			return nil, fmt.Errorf("opening tags file: %w", err)
		}
		defer f.Close()
		in = f
	}
	return a.scanner.ScanTags(in)
}

func (a *app) importCatalog(from string) error {
	if *a.dbPath == "" {
		return fmt.Errorf("--db is required for import")
	}
	a.setupLogging()

	var source catalog.Source = catalog.Defaults()
	if from != "" {
		src, err := catalog.NewFileSource(from)
		if err != nil {
			return err
		}
		source = src
	}

	db, err := catalog.NewBoltDB(*a.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	items, promotions, err := catalog.Import(db, source)
	if err != nil {
		return err
	}
	slog.Info("Catalog imported", "path", *a.dbPath, "items", items, "promotions", promotions)
	return nil
}

// itemGetter is implemented by sources that can look up a single barcode
type itemGetter interface {
	GetItem(barcode string) (*catalog.Item, error)
}

func (a *app) listItems(barcodes []string) error {
	source, closeSource, err := a.openSource()
	if err != nil {
		return err
	}
	defer closeSource()

	items, err := findItems(source, barcodes)
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Fprintf(a.stdout, "%s\t%s\t%s\t%s\n", item.Barcode, item.Name, item.Unit, item.Price.StringFixed(2))
	}
	return nil
}

// findItems returns every item when barcodes is empty, otherwise the
// requested items in the order given.
func findItems(source catalog.Source, barcodes []string) ([]catalog.Item, error) {
	if getter, ok := source.(itemGetter); ok && len(barcodes) > 0 {
		items := make([]catalog.Item, 0, len(barcodes))
		for _, barcode := range barcodes {
			item, err := getter.GetItem(barcode)
			if err != nil {
				return nil, err
			}
			items = append(items, *item)
		}
		return items, nil
	}

	all, err := source.LoadAllItems()
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	if len(barcodes) == 0 {
		return all, nil
	}

	index := make(map[string]catalog.Item, len(all))
	for _, item := range all {
		index[item.Barcode] = item
	}
	items := make([]catalog.Item, 0, len(barcodes))
	for _, barcode := range barcodes {
		item, ok := index[barcode]
		if !ok {
			return nil, fmt.Errorf("item not found: %s", barcode)
		}
		items = append(items, item)
	}
	return items, nil
}

func (a *app) listPromotions() error {
	source, closeSource, err := a.openSource()
	if err != nil {
		return err
	}
	defer closeSource()

	promotions, err := source.LoadPromotions()
	if err != nil {
		return fmt.Errorf("loading promotions: %w", err)
	}
	for _, p := range promotions {
		fmt.Fprintf(a.stdout, "%s\t%s\n", p.Type, strings.Join(p.Barcodes, ","))
	}
	return nil
}
