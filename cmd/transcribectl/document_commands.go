package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"transcribe/internal/app"
	"transcribe/internal/logging"
	"transcribe/internal/model"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the metadata schema and seed the bound element sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config()
			loc := logLocation(cfg.LogTimezone)
			db, dialect, err := app.ConnectDatabase(cmd.Context(), cfg.Database, logging.New(cmd.ErrOrStderr(), loc))
			if err != nil {
				return err
			}
			defer db.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "Schema ready (%s)\n", dialect)
			return nil
		},
	}
}

func newPagesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pages <document-id>",
		Short: "List the pages of a document in attachment order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			pages, err := a.Adapter.DocumentPages(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(pages))
			for i, p := range pages {
				status, err := a.Adapter.DocumentPageTranscriptionStatus(cmd.Context(), p.ID)
				if err != nil {
					return err
				}
				imported, err := a.Adapter.DocumentPageTranscriptionIsImported(cmd.Context(), args[0], p.ID)
				if err != nil {
					return err
				}
				rows = append(rows, []string{strconv.Itoa(i + 1), p.ID, p.Name, status, yesNo(imported)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"#", "Page", "Name", "Status", "Transcribed"},
				rows,
				[]columnAlignment{alignRight},
			))
			return nil
		},
	}
}

func newPageCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "page <document-id> <page-id>",
		Short: "Show one page with its file URL, status and transcription",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			v, err := a.Service.Page(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			transcription := "(none)"
			if v.Transcription != nil {
				transcription = *v.Transcription
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Field", "Value"},
				[][]string{
					{"Page", v.ID},
					{"Name", v.Name},
					{"File URL", v.FileURL},
					{"Status", v.Status},
					{"Transcribed", yesNo(v.TranscriptionImported)},
					{"Transcription", transcription},
				},
				nil,
			))
			return nil
		},
	}
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import <document-id> [page-id]",
		Short: "Import a transcription for a page, or for the whole document when no page is given",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 2 {
				err = a.Adapter.ImportDocumentPageTranscription(cmd.Context(), args[0], args[1], text)
			} else {
				err = a.Adapter.ImportDocumentTranscription(cmd.Context(), args[0], text)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d bytes\n", len(text))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "File holding the transcription text (- for stdin)")
	return cmd
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <document-id> <page-id> [status]",
		Short: "Show or set the transcription status of a page",
		Long: "Without a status argument the current status is printed. Valid statuses are " +
			`"Not Started", "In Progress", "Needs Review" and "Completed"; an empty string clears the status.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 3 {
				if err := a.Adapter.ImportPageTranscriptionStatus(cmd.Context(), args[0], args[1], args[2]); err != nil {
					return err
				}
			} else {
				ok, err := a.Adapter.DocumentPageExists(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("page %s not found in document %s", args[1], args[0])
				}
			}
			status, err := a.Adapter.DocumentPageTranscriptionStatus(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), status)
			return nil
		},
	}
}

func newRecalculateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "recalculate <document-id>",
		Short: "Recompute the document progress from its page statuses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			p, err := a.Service.RecalculateProgress(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Completed %", "Needs Review %"},
				[][]string{{p.Completed, p.NeedsReview}},
				[]columnAlignment{alignRight, alignRight},
			))
			return nil
		},
	}
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <document-id>",
		Short: "Store the joined page transcriptions as the document transcription and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			text, err := a.Service.ExportDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newOptionCommand(ctx *commandContext) *cobra.Command {
	optionCmd := &cobra.Command{
		Use:   "option",
		Short: "Read or change process-wide options",
	}

	optionCmd.AddCommand(&cobra.Command{
		Use:   "get <name>",
		Short: "Print an option value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			v, ok, err := a.Store.Options.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("option %s is not set", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	})

	optionCmd.AddCommand(&cobra.Command{
		Use:   "set <name> <value>",
		Short: "Create or replace an option value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := args[1]
			if args[0] == model.ImportTypeOption {
				t, err := model.ParseImportType(value)
				if err != nil {
					return err
				}
				value = string(t)
			}
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.Store.Options.Set(cmd.Context(), args[0], value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], value)
			return nil
		},
	})

	return optionCmd
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcription: %w", err)
	}
	return string(b), nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
