package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/config"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database/articles"
)

// ListArticlesCommand prints the catalogue, optionally filtered.
type ListArticlesCommand struct {
	DatabasePath string
	Title        string
	Author       string
	Event        string
}

func NewListArticlesCommand() *ListArticlesCommand {
	return &ListArticlesCommand{}
}

func (cmd *ListArticlesCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("list-articles", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database")
	fs.StringVar(&cmd.Title, "title", "", "Filter by title substring")
	fs.StringVar(&cmd.Author, "author", "", "Filter by author name")
	fs.StringVar(&cmd.Event, "event", "", "Filter by event name")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s list-articles [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List articles in the library.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ListArticlesCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := articles.NewRepository(db.DB)
	found, err := repo.Search(articles.Filters{
		Title:  cmd.Title,
		Author: cmd.Author,
		Event:  cmd.Event,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(found) == 0 {
		fmt.Println("No articles found.")
		return nil
	}

	for _, article := range found {
		names := make([]string, 0, len(article.Authors))
		for _, author := range article.Authors {
			names = append(names, author.Name)
		}
		fmt.Printf("[%d] %s\n", article.ID, article.Title)
		if len(names) > 0 {
			fmt.Printf("     %s\n", strings.Join(names, ", "))
		}
		if article.Edition.Event.Name != "" {
			fmt.Printf("     %s %d\n", article.Edition.Event.Name, article.Edition.Year)
		}
	}
	fmt.Printf("\n%d article(s)\n", len(found))

	return nil
}
