package cli

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/config"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database/articles"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database/editions"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database/events"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/entities"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/services"
)

// ImportCSVCommand imports articles from a CSV file with title, abstract,
// pdf_url, authors and bibtex columns. The event and edition are created on
// first use.
type ImportCSVCommand struct {
	CSVPath      string
	DatabasePath string
	EventName    string
	Year         int
}

func NewImportCSVCommand() *ImportCSVCommand {
	return &ImportCSVCommand{}
}

func (cmd *ImportCSVCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-csv", flag.ExitOnError)

	fs.StringVar(&cmd.CSVPath, "file", "", "Path to the CSV file (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database")
	fs.StringVar(&cmd.EventName, "event", "", "Event name to file articles under (required)")
	fs.IntVar(&cmd.Year, "year", 0, "Edition year to file articles under (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-csv -file <path> -event <name> -year <year> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import articles from a CSV file. Expected columns: title, abstract,\n")
		fmt.Fprintf(os.Stderr, "pdf_url, authors (semicolon-separated), bibtex. The event and edition\n")
		fmt.Fprintf(os.Stderr, "are created if they do not exist yet.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.CSVPath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	if cmd.EventName == "" || cmd.Year == 0 {
		return fmt.Errorf("both -event and -year are required")
	}

	return nil
}

func (cmd *ImportCSVCommand) Run() error {
	file, err := os.Open(cmd.CSVPath)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	edition, err := cmd.resolveEdition(db)
	if err != nil {
		return err
	}

	articlesRepo := articles.NewRepository(db.DB)
	service := services.NewArticleService(articlesRepo, nil, nil)

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := columns["title"]; !ok {
		return fmt.Errorf("CSV file has no title column")
	}

	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var imported, failed int
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV: %w", err)
		}

		title := field(row, "title")
		if title == "" {
			failed++
			fmt.Fprintf(os.Stderr, "Skipping row without title\n")
			continue
		}

		article := &entities.Article{
			Title:     title,
			Abstract:  field(row, "abstract"),
			PDFURL:    field(row, "pdf_url"),
			EditionID: edition.ID,
			BibTeX:    field(row, "bibtex"),
		}

		var names []string
		for _, name := range strings.Split(field(row, "authors"), ";") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}

		if _, err := service.Create(article, names, nil); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Failed to import %q: %v\n", title, err)
			continue
		}
		imported++
		fmt.Printf("Imported: %s\n", title)
	}

	fmt.Printf("Import completed: %d imported, %d failed\n", imported, failed)
	return nil
}

// resolveEdition finds or creates the target edition for the given event
// name and year, creating the event too when needed.
func (cmd *ImportCSVCommand) resolveEdition(db *database.Database) (*entities.Edition, error) {
	eventsRepo := events.NewRepository(db.DB)
	event, err := eventsRepo.GetOrCreateByName(cmd.EventName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve event %q: %w", cmd.EventName, err)
	}

	editionsRepo := editions.NewRepository(db.DB)
	edition, err := editionsRepo.GetByEventAndYear(cmd.EventName, cmd.Year)
	if err == nil {
		return edition, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to resolve edition for %s %d: %w", cmd.EventName, cmd.Year, err)
	}

	edition = &entities.Edition{EventID: event.ID, Year: cmd.Year}
	if err := editionsRepo.Create(edition); err != nil {
		return nil, fmt.Errorf("failed to create edition for %s %d: %w", cmd.EventName, cmd.Year, err)
	}
	return edition, nil
}
