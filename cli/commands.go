package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rgolang/omapedit/literal"
	"github.com/rgolang/omapedit/omap"
)

func parseInsertion(s string) (omap.Insertion[any], error) {
	v, err := literal.ParseValue(s)
	if err != nil {
		return omap.Insertion[any]{}, fmt.Errorf("invalid insertion %q: %w", s, err)
	}
	if m, ok := v.(*omap.Map[any]); ok {
		return omap.Block(m), nil
	}
	return omap.Single(v), nil
}

func parseValues(args []string) ([]any, error) {
	values := make([]any, len(args))
	for i, s := range args {
		v, err := literal.ParseValue(s)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", s, err)
		}
		values[i] = v
	}
	return values, nil
}

func parseKeys(args []string) ([]omap.Key, error) {
	keys := make([]omap.Key, len(args))
	for i, s := range args {
		k, err := literal.ParseKey(s)
		if err != nil {
			return nil, fmt.Errorf("invalid key %q: %w", s, err)
		}
		keys[i] = k
	}
	return keys, nil
}

func (a *app) fmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt FILE",
		Short: "Print FILE, optionally converting it to another format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd, args[0], "fmt", func(m *omap.Map[any]) error {
				return nil
			})
		},
	}
}

func (a *app) insertAtOffsetCmd() *cobra.Command {
	var preserveKeys bool
	cmd := &cobra.Command{
		Use:   "insert-at-offset FILE OFFSET INSERTION",
		Short: "Insert at a zero-based position; OFFSET equal to the length appends",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: %q is not an integer", omap.ErrInvalidOffset, args[1])
			}
			ins, err := parseInsertion(args[2])
			if err != nil {
				return err
			}
			return a.edit(cmd, args[0], "insert-at-offset", func(m *omap.Map[any]) error {
				return m.InsertAtOffset(offset, ins, preserveKeys)
			})
		},
	}
	cmd.Flags().BoolVar(&preserveKeys, "preserve-keys", false, "Keep existing keys instead of renumbering")
	return cmd
}

func (a *app) insertAtKeyCmd() *cobra.Command {
	var (
		anchors      []string
		before       bool
		preserveKeys bool
	)
	cmd := &cobra.Command{
		Use:   "insert-at-key FILE INSERTION --anchor KEY [--anchor KEY]...",
		Short: "Insert next to the first anchor key present in the map",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := parseKeys(anchors)
			if err != nil {
				return err
			}
			ins, err := parseInsertion(args[1])
			if err != nil {
				return err
			}
			opts := []omap.InsertOption{omap.PreserveKeys(preserveKeys)}
			if before {
				opts = append(opts, omap.Before())
			}
			return a.edit(cmd, args[0], "insert-at-key", func(m *omap.Map[any]) error {
				return m.InsertAtKey(keys, ins, opts...)
			})
		},
	}
	cmd.Flags().StringArrayVar(&anchors, "anchor", nil, "Anchor key, tried in the order given (5 is an integer key, '5' a string key)")
	cmd.Flags().BoolVar(&before, "before", false, "Insert before the anchor instead of after it")
	cmd.Flags().BoolVar(&preserveKeys, "preserve-keys", true, "Keep existing keys instead of renumbering")
	cmd.MarkFlagRequired("anchor")
	return cmd
}

func (a *app) insertAtValueCmd() *cobra.Command {
	var (
		before       bool
		preserveKeys bool
	)
	cmd := &cobra.Command{
		Use:   "insert-at-value FILE VALUE INSERTION",
		Short: "Insert next to the first entry whose value is strictly equal to VALUE",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(args[1:2])
			if err != nil {
				return err
			}
			ins, err := parseInsertion(args[2])
			if err != nil {
				return err
			}
			opts := []omap.InsertOption{omap.PreserveKeys(preserveKeys)}
			if before {
				opts = append(opts, omap.Before())
			}
			return a.edit(cmd, args[0], "insert-at-value", func(m *omap.Map[any]) error {
				return m.InsertAtValue(values[0], ins, opts...)
			})
		},
	}
	cmd.Flags().BoolVar(&before, "before", false, "Insert before the anchor instead of after it")
	cmd.Flags().BoolVar(&preserveKeys, "preserve-keys", false, "Keep existing keys instead of renumbering")
	return cmd
}

func (a *app) renameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename FILE OLD NEW",
		Short: "Rename a key without moving its entry",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := parseKeys(args[1:])
			if err != nil {
				return err
			}
			return a.edit(cmd, args[0], "rename", func(m *omap.Map[any]) error {
				return m.RenameKey(keys[0], keys[1])
			})
		},
	}
}

func (a *app) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove FILE VALUE...",
		Short: "Remove the first entry loosely equal to each VALUE",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(args[1:])
			if err != nil {
				return err
			}
			return a.edit(cmd, args[0], "remove", func(m *omap.Map[any]) error {
				m.RemoveValues(values...)
				return nil
			})
		},
	}
}

func (a *app) sortCmd() *cobra.Command {
	var (
		preserveKeys bool
		reverse      bool
		byKey        bool
	)
	cmd := &cobra.Command{
		Use:   "sort FILE",
		Short: "Stable sort by value (or by key with --by-key)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmp := omap.CompareValues
			if reverse {
				cmp = omap.Reverse(cmp)
			}
			return a.edit(cmd, args[0], "sort", func(m *omap.Map[any]) error {
				switch {
				case byKey:
					m.SortKeys()
				case preserveKeys:
					m.StableSortPreservingKeys(cmp)
				default:
					m.StableSort(cmp)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&preserveKeys, "preserve-keys", false, "Keep every value under its key instead of renumbering")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "Sort in descending order")
	cmd.Flags().BoolVar(&byKey, "by-key", false, "Sort entries by key; integer keys come first")
	return cmd
}
