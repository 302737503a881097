// Package cli implements the command line subcommands.
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/config"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database/articles"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database/editions"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/importer"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/pdfstore"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/services"
)

// ImportBibTeXCommand imports articles from a BibTeX file, optionally
// matching PDFs from a ZIP archive.
type ImportBibTeXCommand struct {
	BibTeXPath   string
	ZipPath      string
	DatabasePath string
	PDFDir       string
	EditionID    uint
	EventName    string
	Year         int
	Verbose      bool
}

func NewImportBibTeXCommand() *ImportBibTeXCommand {
	return &ImportBibTeXCommand{}
}

func (cmd *ImportBibTeXCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-bibtex", flag.ExitOnError)

	var editionID uint64
	fs.StringVar(&cmd.BibTeXPath, "file", "", "Path to the BibTeX file (required)")
	fs.StringVar(&cmd.ZipPath, "zip", "", "Path to a ZIP archive of PDFs to match against entry titles")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database")
	fs.StringVar(&cmd.PDFDir, "pdf-dir", "./pdfs", "Directory for storing matched PDFs")
	fs.Uint64Var(&editionID, "edition", 0, "Edition ID to file articles under")
	fs.StringVar(&cmd.EventName, "event", "", "Event name (used with -year when -edition is not given)")
	fs.IntVar(&cmd.Year, "year", 0, "Edition year (used with -event)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print every created, skipped and errored entry")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-bibtex -file <path> (-edition <id> | -event <name> -year <year>) [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import articles in bulk from a BibTeX file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import-bibtex -file refs.bib -edition 3\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s import-bibtex -file refs.bib -event SBES -year 2023 -zip papers.zip\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	cmd.EditionID = uint(editionID)

	if cmd.BibTeXPath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	if cmd.EditionID == 0 && (cmd.EventName == "" || cmd.Year == 0) {
		return fmt.Errorf("either -edition or both -event and -year are required")
	}

	return nil
}

func (cmd *ImportBibTeXCommand) Run() error {
	source, err := os.ReadFile(cmd.BibTeXPath)
	if err != nil {
		return fmt.Errorf("failed to read BibTeX file: %w", err)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	editionsRepo := editions.NewRepository(db.DB)
	editionID := cmd.EditionID
	if editionID == 0 {
		edition, err := editionsRepo.GetByEventAndYear(cmd.EventName, cmd.Year)
		if err != nil {
			return fmt.Errorf("failed to resolve edition for %s %d: %w", cmd.EventName, cmd.Year, err)
		}
		editionID = edition.ID
	} else if _, err := editionsRepo.GetByID(editionID); err != nil {
		return fmt.Errorf("edition %d not found: %w", editionID, err)
	}

	var archive *importer.Archive
	if cmd.ZipPath != "" {
		zipFile, err := os.Open(cmd.ZipPath)
		if err != nil {
			return fmt.Errorf("failed to open ZIP archive: %w", err)
		}
		defer zipFile.Close()
		info, err := zipFile.Stat()
		if err != nil {
			return err
		}
		archive, err = importer.ExtractPDFs(zipFile, info.Size())
		if err != nil {
			return fmt.Errorf("failed to read ZIP archive: %w", err)
		}
	}

	pdfs, err := pdfstore.NewStore(cmd.PDFDir)
	if err != nil {
		return fmt.Errorf("failed to initialize PDF storage: %w", err)
	}

	articlesRepo := articles.NewRepository(db.DB)
	service := services.NewArticleService(articlesRepo, pdfs, nil)

	report := importer.NewOrchestrator(service).Run(importer.Batch{
		EditionID: editionID,
		Source:    string(source),
		Archive:   archive,
	})

	fmt.Println("BibTeX Import")
	fmt.Println("=============")
	fmt.Printf("Batch:        %s\n", report.BatchID)
	fmt.Printf("Processed:    %d\n", report.TotalProcessed())
	fmt.Printf("Created:      %d\n", len(report.Created))
	fmt.Printf("Skipped:      %d\n", len(report.Skipped))
	fmt.Printf("Errors:       %d\n", len(report.Errors))
	fmt.Printf("Success rate: %d%%\n", report.SuccessRate())
	if report.PDFFilesInZip > 0 {
		fmt.Printf("PDFs in ZIP:  %d (matched %d)\n", report.PDFFilesInZip, report.PDFsMatched)
	}

	if cmd.Verbose {
		for _, article := range report.Created {
			fmt.Printf("  created: %s\n", article.Title)
		}
		for _, skipped := range report.Skipped {
			fmt.Printf("  skipped: %s (%s)\n", skipped.Title, skipped.Reason)
		}
		for _, failed := range report.Errors {
			fmt.Printf("  error:   %s (%s)\n", failed.Title, failed.Reason)
		}
	}

	return nil
}
