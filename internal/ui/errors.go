package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"jtp/internal/domain"
	"jtp/internal/storage"
)

// ErrorViewer displays test failures in an interactive TUI
type ErrorViewer struct {
	storage storage.Storage
	out     io.Writer
}

// NewErrorViewer creates a new ErrorViewer. Resolved marks are persisted through st.
func NewErrorViewer(st storage.Storage, out io.Writer) *ErrorViewer {
	return &ErrorViewer{
		storage: st,
		out:     out,
	}
}

// View displays the failures of output in an interactive TUI
func (ev *ErrorViewer) View(output *domain.TestResultsOutput) error {
	if output.Results == nil {
		red.Fprintln(ev.out, "✗ The last run could not be parsed; run `jtp debug` to inspect the output")
		return nil
	}
	failures := output.Failures()
	if len(failures) == 0 {
		green.Fprintln(ev.out, "✓ No test failures found!")
		return nil
	}

	resolved := resolvedSet(output.Resolved, len(failures))
	var saveErr error

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	for i, failure := range failures {
		list.AddItem(listItemText(failure, i, resolved[i]), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(headerText(len(failures), len(failures)-len(resolvedIndexes(resolved))))
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(failures) {
			statsView.SetText(formatFailureStats(failures[index], index+1))
			detailsView.SetText(formatFailureDetails(failures[index])).ScrollToBeginning()
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC, tcell.KeyEsc:
			app.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'r', 'R':
				index := list.GetCurrentItem()
				if index >= 0 && index < len(failures) {
					resolved[index] = !resolved[index]
					list.SetItemText(index, listItemText(failures[index], index, resolved[index]), "")
					updateHeader()
					output.Resolved = resolvedIndexes(resolved)
					saveErr = ev.storage.SaveOutput(output)
				}
				return nil
			case 'q':
				app.Stop()
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if saveErr != nil {
		return fmt.Errorf("failed to save resolved status: %w", saveErr)
	}
	return nil
}

// resolvedSet converts stored resolved indexes into a lookup, dropping out-of-range entries
func resolvedSet(indexes []int, count int) map[int]bool {
	set := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		if i >= 0 && i < count {
			set[i] = true
		}
	}
	return set
}

// resolvedIndexes returns the resolved indexes in ascending order
func resolvedIndexes(set map[int]bool) []int {
	indexes := []int{}
	for i, ok := range set {
		if ok {
			indexes = append(indexes, i)
		}
	}
	sort.Ints(indexes)
	return indexes
}

func headerText(total, unresolved int) string {
	return fmt.Sprintf(" Test Failures (%d total, %d unresolved) | ↑↓ navigate, [yellow]R[white] mark resolved, → details, ← back, q quit ",
		total, unresolved)
}

func listItemText(failure domain.TestFailure, index int, isResolved bool) string {
	name := failure.TestName
	if name == "" {
		name = fmt.Sprintf("Test %d", index+1)
	}
	name = tview.Escape(name)
	if isResolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
}

// formatFailureDetails formats a test failure for display using tview color tags ([red], [cyan], etc.)
func formatFailureDetails(failure domain.TestFailure) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ %s[white]\n\n", tview.Escape(failure.FullName))

	location := failure.File
	if failure.Line != nil {
		location = fmt.Sprintf("%s:%d", failure.File, *failure.Line)
	}
	fmt.Fprintf(&b, "[cyan]File:[white] %s\n", tview.Escape(location))

	if failure.MatcherName != nil {
		fmt.Fprintf(&b, "[cyan]Matcher:[white] %s\n", tview.Escape(*failure.MatcherName))
	}
	if failure.Expected != nil {
		fmt.Fprintf(&b, "[green]Expected:[white] %s\n", tview.Escape(*failure.Expected))
	}
	if failure.Received != nil {
		fmt.Fprintf(&b, "[red]Received:[white] %s\n", tview.Escape(*failure.Received))
	}

	if failure.Message != "" {
		fmt.Fprintf(&b, "\n[yellow]Message:[white]\n%s\n", tview.Escape(failure.Message))
	}

	return b.String()
}

// formatFailureStats formats the stats header for a test failure
func formatFailureStats(failure domain.TestFailure, number int) string {
	path := failure.File
	if path == "" {
		path = "Unknown path"
	}

	testCase := failure.FullName
	if testCase == "" {
		testCase = fmt.Sprintf("Test %d", number)
	}

	return fmt.Sprintf("[cyan]path:[white] [yellow]%s[white] › [yellow]%s[white]\n",
		tview.Escape(path), tview.Escape(testCase))
}
