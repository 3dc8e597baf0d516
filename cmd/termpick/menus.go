package main

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"termpick/internal/keys"
	"termpick/internal/match"
	"termpick/internal/menu"
	"termpick/internal/screen"
	"termpick/internal/source"
)

// itemFlags selects where items come from when no arguments are given
type itemFlags struct {
	list string
	dir  string
	glob string
	file string
}

func (f *itemFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.list, "list", "l", "", "use a saved list")
	cmd.Flags().StringVarP(&f.dir, "dir", "d", "", "choose among files under this directory")
	cmd.Flags().StringVarP(&f.glob, "glob", "g", "", "only files whose name matches this pattern (with --dir)")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "read items from a file, one per line")
}

// items resolves the items of a menu: arguments, then --list, --dir,
// --file, and finally piped stdin
func (a *app) items(args []string, f itemFlags) ([]string, error) {
	var items []string
	var err error

	switch {
	case len(args) > 0:
		items = source.Args(args)
	case f.list != "":
		items, err = a.cfg.GetList(f.list)
	case f.dir != "":
		items, err = source.Dir(f.dir, f.glob)
	case f.file != "":
		items, err = source.File(f.file)
	default:
		items, err = source.Stdin()
	}
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, source.ErrNoItems
	}
	return items, nil
}

// stringFlag returns the flag value when it was given, else fallback
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return fallback
}

// withMenus opens the terminal for the duration of fn
func (a *app) withMenus(fn func(m *menu.Menus) error) (err error) {
	t, err := screen.Open(screen.Options{MinRows: a.cfg.MinRows, MinCols: a.cfg.MinCols})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := t.Close(); cerr != nil {
			a.log.Warn("failed to restore terminal", "err", cerr)
			if err == nil {
				err = fmt.Errorf("failed to restore terminal: %w", cerr)
			}
		}
	}()

	m := menu.New(t.Keys, t.Surface, menu.WithLogger(a.log), menu.WithHiddenCursor())
	return fn(m)
}

func (a *app) printChoice(cmd *cobra.Command, items []string, idx int, asIndex bool) {
	if asIndex {
		fmt.Fprintln(cmd.OutOrStdout(), idx)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), items[idx])
}

func newSelectCmd(a *app) *cobra.Command {
	var (
		f       itemFlags
		asIndex bool
	)

	cmd := &cobra.Command{
		Use:   "select [items...]",
		Short: "Choose with the arrow keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.items(args, f)
			if err != nil {
				return err
			}
			quit, err := keys.Parse(stringFlag(cmd, "quit", a.cfg.QuitKey))
			if err != nil {
				return err
			}
			title, _ := cmd.Flags().GetString("title")
			prompt := stringFlag(cmd, "prompt", a.cfg.Prompt)

			var (
				idx int
				ok  bool
			)
			err = a.withMenus(func(m *menu.Menus) error {
				idx, ok, err = menu.Select(m, slices.Values(menu.Texts(items)), title, prompt, quit)
				return err
			})
			if err != nil {
				return err
			}
			if !ok {
				return errCancelled
			}

			a.log.Info("selected", "mode", "select", "index", idx)
			a.printChoice(cmd, items, idx, asIndex)
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().StringP("title", "t", "", "line shown above the list")
	cmd.Flags().StringP("prompt", "p", "", "marker in front of the highlighted item")
	cmd.Flags().StringP("quit", "q", "", "key that closes the menu (e.g. q, esc, ctrl+d)")
	cmd.Flags().BoolVarP(&asIndex, "index", "i", false, "print the 0-based index instead of the item")
	return cmd
}

func newFilterCmd(a *app) *cobra.Command {
	var f itemFlags

	cmd := &cobra.Command{
		Use:   "filter [items...]",
		Short: "Type to narrow the list, then choose",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.items(args, f)
			if err != nil {
				return err
			}
			quit, err := keys.Parse(stringFlag(cmd, "quit", a.cfg.QuitKey))
			if err != nil {
				return err
			}

			ignoreCase := a.cfg.IgnoreCase
			if cmd.Flags().Changed("ignore-case") {
				ignoreCase, _ = cmd.Flags().GetBool("ignore-case")
			}
			matcher, err := match.ByName(stringFlag(cmd, "match", a.cfg.Matcher), ignoreCase)
			if err != nil {
				return err
			}
			query := match.Query(menu.Texts(items), func(t menu.Text) string { return string(t) }, matcher)

			prompt := stringFlag(cmd, "prompt", a.cfg.Prompt)
			inputPrompt := stringFlag(cmd, "input-prompt", a.cfg.InputPrompt)

			var (
				choice menu.Text
				ok     bool
			)
			err = a.withMenus(func(m *menu.Menus) error {
				choice, ok, err = menu.SelectWithInput(m, query, prompt, inputPrompt, quit)
				return err
			})
			if err != nil {
				return err
			}
			if !ok {
				return errCancelled
			}

			a.log.Info("selected", "mode", "filter", "item", string(choice))
			fmt.Fprintln(cmd.OutOrStdout(), choice)
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().StringP("prompt", "p", "", "marker in front of the highlighted item")
	cmd.Flags().String("input-prompt", "", "label in front of the input line")
	cmd.Flags().StringP("quit", "q", "", "non-character key that closes the menu (e.g. esc, ctrl+d)")
	cmd.Flags().StringP("match", "m", "", "how typed text filters items: prefix, substring or fuzzy")
	cmd.Flags().Bool("ignore-case", false, "ignore case when filtering")
	return cmd
}

func newNumberedCmd(a *app) *cobra.Command {
	var (
		f       itemFlags
		title   string
		quitKey string
		retry   bool
		asIndex bool
	)

	cmd := &cobra.Command{
		Use:   "numbered [items...]",
		Short: "Choose by pressing the item's number",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.items(args, f)
			if err != nil {
				return err
			}
			quit, err := keys.Parse(quitKey)
			if err != nil {
				return err
			}
			if len(items) > 9 {
				a.stderr.Hint("only the first 9 items can be chosen by number")
			}

			var res menu.Numbered
			err = a.withMenus(func(m *menu.Menus) error {
				heading := title
				for {
					res, err = menu.SelectNumbered(m, slices.Values(menu.Texts(items)), quit, heading)
					if err != nil || res.Kind != menu.NumberedUnrecognized || !retry {
						return err
					}
					a.log.Debug("unrecognized key, showing the menu again", "key", res.Key.String())
					heading = fmt.Sprintf("%s (no item for %s, try again)", title, strconv.Quote(res.Key.String()))
				}
			})
			if err != nil {
				return err
			}

			switch res.Kind {
			case menu.NumberedQuit:
				return errCancelled
			case menu.NumberedUnrecognized:
				return &exitStatus{code: exitUnrecognized, reason: fmt.Sprintf("no item for key %s", strconv.Quote(res.Key.String()))}
			}

			a.log.Info("selected", "mode", "numbered", "index", res.Index)
			a.printChoice(cmd, items, res.Index, asIndex)
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&title, "title", "t", "", "line shown above the list")
	cmd.Flags().StringVarP(&quitKey, "quit", "q", "q", "key that closes the menu")
	cmd.Flags().BoolVarP(&retry, "retry", "r", false, "show the menu again after a key that picks nothing")
	cmd.Flags().BoolVarP(&asIndex, "index", "i", false, "print the 0-based index instead of the item")
	return cmd
}
