package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"entityd/internal/extract"
	"entityd/pkg/types"
)

type extractFlags struct {
	nouns      bool
	nounChunks bool
	asJSON     bool
	noColor    bool
}

func newExtractCmd(g *globalFlags) *cobra.Command {
	f := &extractFlags{}
	cmd := &cobra.Command{
		Use:     "extract [text]",
		Short:   "Run one extraction locally and print the result",
		Example: "  entityd extract \"Apple was founded by Steve Jobs in California.\"\n  echo \"Berlin is big\" | entityd extract --nouns --json",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, g, nil)
			if err != nil {
				return err
			}
			text, err := inputText(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			log := newLogger(cfg)
			backend, err := openBackend(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			svc := extract.New(backend, log)
			defer svc.Close()

			resp, err := svc.Extract(cmd.Context(), types.ExtractionRequest{
				Text:              &text,
				ExtractNouns:      f.nouns,
				ExtractNounChunks: f.nounChunks,
			})
			if err != nil {
				return err
			}
			if f.asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			renderResponse(cmd.OutOrStdout(), resp, !f.noColor)
			return nil
		},
	}
	cmd.Flags().BoolVar(&f.nouns, "nouns", false, "Also list common nouns")
	cmd.Flags().BoolVar(&f.nounChunks, "noun-chunks", false, "Also list noun chunks")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Print the raw JSON response")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "Disable colored labels")
	return cmd
}

// inputText takes the positional argument or, when absent, all of stdin.
func inputText(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if f, ok := stdin.(*os.File); ok {
		if st, err := f.Stat(); err == nil && st.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("no text given: pass it as an argument or pipe it on stdin")
		}
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

var labelColors = map[string]color.Color{
	"PERSON": color.FgCyan,
	"GPE":    color.FgGreen,
	"ORG":    color.FgYellow,
}

func colorLabel(label string, enabled bool) string {
	if !enabled {
		return label
	}
	c, ok := labelColors[label]
	if !ok {
		c = color.FgMagenta
	}
	return color.New(c, color.OpBold).Render(label)
}

func renderResponse(w io.Writer, resp types.ExtractionResponse, colored bool) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Entity", "Label"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for i, e := range resp.Entities {
		table.Append([]string{fmt.Sprint(i + 1), e.Text, colorLabel(e.Label, colored)})
	}
	table.Render()
	if len(resp.Entities) == 0 {
		fmt.Fprintln(w, "no entities found")
	}
	if resp.Nouns != nil {
		fmt.Fprintf(w, "\nnouns: %s\n", strings.Join(resp.Nouns, ", "))
	}
	if resp.NounChunks != nil {
		fmt.Fprintf(w, "noun chunks: %s\n", strings.Join(resp.NounChunks, " | "))
	}
}
