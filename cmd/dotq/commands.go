package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	dotpath "github.com/goliatone/go-dotpath"
	"github.com/goliatone/go-dotpath/engine"
	"github.com/goliatone/go-dotpath/internal/codec"
	"github.com/spf13/cobra"
)

var (
	getCmd = &cobra.Command{
		Use:   "get [path...]",
		Short: "Print the value at one or more paths",
		Long: `Print the value at one or more paths. Without paths the whole
document is printed. Several paths print a mapping keyed by the last
segment of each path.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := open(cmd)
			if err != nil {
				return err
			}
			var def any
			if cmd.Flags().Changed("default") {
				text, _ := cmd.Flags().GetString("default")
				def = codec.ParseValue(text)
			}

			var value any
			switch len(args) {
			case 0:
				value = src.doc.Value()
			case 1:
				value, err = src.doc.GetOr(args[0], def)
			default:
				value, err = src.doc.GetMany(args, def)
			}
			if err != nil {
				return err
			}

			raw, _ := cmd.Flags().GetBool("raw")
			if s, ok := value.(string); ok && raw {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
				return err
			}
			out, err := src.render(value, loadConfig().Output)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	setCmd = &cobra.Command{
		Use:   "set [path] [value] [path value...]",
		Short: "Set one or more paths and print the result",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 {
				return fmt.Errorf("expected path/value pairs, got %d args", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := open(cmd)
			if err != nil {
				return err
			}
			asString, _ := cmd.Flags().GetBool("string")
			pairs := make([]engine.Pair, 0, len(args)/2)
			for i := 0; i < len(args); i += 2 {
				var value any = args[i+1]
				if !asString {
					value = codec.ParseValue(args[i+1])
				}
				pairs = append(pairs, engine.Pair{Key: args[i], Value: value})
			}
			src.doc.SetMany(pairs...)
			return finish(cmd, src)
		},
	}
	deleteCmd = &cobra.Command{
		Use:     "delete [path...]",
		Aliases: []string{"del", "rm"},
		Short:   "Delete paths and print the result",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := open(cmd)
			if err != nil {
				return err
			}
			if strict, _ := cmd.Flags().GetBool("strict"); strict {
				if err := src.doc.DeleteStrict(args...); err != nil {
					return err
				}
			} else {
				src.doc.Delete(args...)
			}
			return finish(cmd, src)
		},
	}
	hasCmd = &cobra.Command{
		Use:   "has [path...]",
		Short: "Report whether paths exist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := open(cmd)
			if err != nil {
				return err
			}
			var found bool
			if anyOf, _ := cmd.Flags().GetBool("any"); anyOf {
				found = src.doc.HasAny(args...)
			} else {
				found = src.doc.Has(args...)
			}
			return printStatus(cmd.OutOrStdout(), found)
		},
	}
)

func init() {
	getCmd.Flags().String("default", "", "value returned for missing paths")
	getCmd.Flags().BoolP("raw", "r", false, "print string results without quotes")

	for _, cmd := range []*cobra.Command{setCmd, deleteCmd} {
		cmd.Flags().BoolP("in-place", "i", false, "write the result back to --file")
		cmd.Flags().Bool("diff", false, "print a line diff instead of the document")
	}
	setCmd.Flags().Bool("string", false, "store values as strings without parsing")
	deleteCmd.Flags().Bool("strict", false, "fail on the first missing path")
	hasCmd.Flags().Bool("any", false, "succeed when at least one path exists")
}

func open(cmd *cobra.Command) (*source, error) {
	cfg := loadConfig()
	logger := dotpath.NewSlogAccessLogger(cfg.logger(cmd.ErrOrStderr()))
	return openDocument(cfg, cmd.InOrStdin(), dotpath.WithAccessLogger(logger))
}

// finish prints or persists a mutated document according to the flags.
func finish(cmd *cobra.Command, src *source) error {
	out := cmd.OutOrStdout()
	if showDiff, _ := cmd.Flags().GetBool("diff"); showDiff {
		text, err := src.diff()
		if err != nil {
			return err
		}
		if _, err := io.WriteString(out, text); err != nil {
			return err
		}
	}
	if inPlace, _ := cmd.Flags().GetBool("in-place"); inPlace {
		if err := src.writeBack(); err != nil {
			return err
		}
		_, err := fmt.Fprintln(cmd.ErrOrStderr(), color.GreenString("updated"), src.path)
		return err
	}
	if showDiff, _ := cmd.Flags().GetBool("diff"); showDiff {
		return nil
	}
	rendered, err := src.render(src.doc.Value(), loadConfig().Output)
	if err != nil {
		return err
	}
	_, err = out.Write(rendered)
	return err
}

func printStatus(w io.Writer, found bool) error {
	text := color.RedString("false")
	if found {
		text = color.GreenString("true")
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
