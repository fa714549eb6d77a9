package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/citehunt/citehunt/internal/corpus"
	"github.com/citehunt/citehunt/internal/model"
	"github.com/citehunt/citehunt/internal/wikitext"
)

var (
	prepareOutput      string
	prepareWriteConfig bool
)

// prepareCmd builds the corpus dictionary a scan needs for IDF scores.
var prepareCmd = &cobra.Command{
	Use:   "prepare <dump>",
	Short: "Build the corpus dictionary from a Wikipedia XML dump",
	Long: `Read a Wikipedia XML dump (plain or bz2), tokenize every admitted
article and persist the token document frequencies. A scan needs this
dictionary to weigh query keywords by corpus rarity.

The article count and dictionary path are stored in the config file so
a following 'citehunt run' picks them up automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		output := prepareOutput
		if output == "" {
			configPath, err := defaultConfigPath()
			if err != nil {
				return err
			}
			output = filepath.Join(filepath.Dir(configPath), "wordids.txt")
		}

		src, err := corpus.Open(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = src.Close() }()

		reader := corpus.NewDumpReader(cfg.General.Namespaces)
		dict := corpus.NewDictionary()

		count := 0
		err = reader.ForEach(src, func(article model.Article) error {
			// Plain text without markers: an empty citation set drops
			// every template.
			plain := wikitext.PlainTextWithMarkers(article.Text, nil, cfg.Quote.Template, cfg.Quote.TextParam)
			dict.AddDocument(corpus.Tokenize(plain))
			count++
			if verbose && count%1000 == 0 {
				fmt.Fprintf(os.Stderr, "processed %d articles\n", count)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("read dump: %w", err)
		}

		if err := dict.SaveAsText(output); err != nil {
			return fmt.Errorf("save dictionary: %w", err)
		}

		fmt.Printf("Processed %d articles, %d distinct tokens.\n", count, dict.Len())
		fmt.Printf("Dictionary written to %s\n", output)

		if prepareWriteConfig {
			cfg.General.ArticleCount = count
			cfg.General.WordIDsPath = output

			configPath := viper.ConfigFileUsed()
			if configPath == "" {
				configPath, err = defaultConfigPath()
				if err != nil {
					return err
				}
			}
			if err := writeConfigFile(configPath, cfg); err != nil {
				return err
			}
			fmt.Printf("Updated %s\n", configPath)
		} else {
			fmt.Printf("Set general.articlecount: %d and general.wordids_path: %s in your config.\n", count, output)
		}

		return nil
	},
}

func init() {
	prepareCmd.Flags().StringVar(&prepareOutput, "output", "", "dictionary output path (default: $HOME/.citehunt/wordids.txt)")
	prepareCmd.Flags().BoolVar(&prepareWriteConfig, "write-config", true, "store the article count and dictionary path in the config file")
	rootCmd.AddCommand(prepareCmd)
}
