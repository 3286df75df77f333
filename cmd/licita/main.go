package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"licita/internal"
	"licita/internal/config"
	"licita/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "analyze":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		tenders := fs.String("tenders", "", "tenders table (csv/xlsx/html)")
		inventory := fs.String("inventory", cfg.InventoryPath, "inventory table (csv/xlsx/html)")
		requirements := fs.String("requirements", cfg.RequirementsPath, "document requirements (csv/xlsx/html/pdf, optional)")
		out := fs.String("out", "", "output path (.csv or .xlsx)")
		_ = fs.Parse(os.Args[2:])
		if *tenders == "" || *inventory == "" || *out == "" {
			must(fmt.Errorf("--tenders, --inventory and --out are required"))
		}

		svc := pipeline.NewService(cfg)
		rows, err := svc.AnalyzeFiles(*tenders, *inventory, *requirements)
		must(err)
		must(exportRows(rows, *out))
		fmt.Printf("analyze done %s output=%s\n", pipeline.Summarize(rows), *out)

	case "extract":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		text := fs.String("text", "", "raw tender description")
		title := fs.String("title", "", "tender title (fallback product source)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*text) == "" && strings.TrimSpace(*title) == "" {
			must(fmt.Errorf("--text or --title is required"))
		}

		extractor := pipeline.NewExtractor(cfg)
		products := extractor.Extract(*text, *title)
		if len(products) == 0 {
			fmt.Println("no products identified")
			return
		}
		for _, p := range products {
			fmt.Printf("%s qty=%d unit=%s category=%s raw=%q\n", p.Code, p.Quantity, p.Unit, p.Category, p.RawName)
		}

	case "docs":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		tender := fs.String("tender", "", "tender name to look up")
		requirements := fs.String("requirements", cfg.RequirementsPath, "document requirements (csv/xlsx/html/pdf)")
		_ = fs.Parse(os.Args[2:])
		if *tender == "" || *requirements == "" {
			must(fmt.Errorf("--tender and --requirements are required"))
		}

		svc := pipeline.NewService(cfg)
		docs, err := svc.ResolveDocuments(*tender, *requirements)
		must(err)
		if len(docs) == 0 {
			fmt.Println("no documents found")
			return
		}
		for _, d := range docs {
			mark := "obligatorio"
			if !d.Mandatory {
				mark = "opcional"
			}
			fmt.Printf("[%s] %s (%s)\n", d.Type, d.Name, mark)
		}

	default:
		usage()
		os.Exit(1)
	}
}

func exportRows(rows []internal.ResultRow, out string) error {
	switch strings.ToLower(filepath.Ext(out)) {
	case ".csv":
		return pipeline.ExportRowsToCSV(rows, out)
	case ".xlsx":
		return pipeline.ExportRowsToXLSX(rows, out)
	default:
		return fmt.Errorf("unsupported output format: %s", out)
	}
}

func usage() {
	fmt.Println("usage: licita <command>")
	fmt.Println("commands:")
	fmt.Println("  analyze --tenders=... --inventory=... [--requirements=...] --out=result.csv|.xlsx")
	fmt.Println("  extract --text=\"50 computadoras dell, 20 impresoras\" [--title=...]")
	fmt.Println("  docs --tender=... --requirements=...")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
