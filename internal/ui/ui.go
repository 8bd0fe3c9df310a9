// Package ui renders CLI output: styled messages, tables, code blocks and
// markdown.
package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

var (
	accentColor  = lipgloss.Color("#7AA2F7")
	successColor = lipgloss.Color("#9ECE6A")
	warningColor = lipgloss.Color("#E0AF68")
	errorColor   = lipgloss.Color("#F7768E")
	mutedColor   = lipgloss.Color("#565F89")

	titleStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	codeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)
)

// Muted prints secondary text, such as watch-mode timestamps.
var Muted = color.New(color.FgHiBlack)

// Accent prints highlighted inline values, such as fingerprints.
var Accent = color.New(color.FgCyan, color.Bold)

// PrintHeader prints a bordered title block.
func PrintHeader(title, subtitle string) {
	header := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(0, 2).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			titleStyle.Render(title),
			mutedStyle.Render(subtitle),
		))
	fmt.Println(header)
}

// PrintSuccess prints a success line.
func PrintSuccess(format string, args ...any) {
	fmt.Println(successStyle.Render("✓ " + fmt.Sprintf(format, args...)))
}

// PrintError prints an error line to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// PrintWarning prints a warning line.
func PrintWarning(format string, args ...any) {
	fmt.Println(warningStyle.Render("⚠ " + fmt.Sprintf(format, args...)))
}

// PrintInfo prints an informational line.
func PrintInfo(format string, args ...any) {
	fmt.Println(mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// PrintSection prints an underlined section title.
func PrintSection(title string) {
	section := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(mutedColor).
		Render(titleStyle.Render(title))
	fmt.Println(section)
}

// PrintTable renders headers and rows with pterm.
func PrintTable(headers []string, rows [][]string) {
	data := pterm.TableData{headers}
	data = append(data, rows...)
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// PrintList prints a bulleted list.
func PrintList(items []string) {
	for _, item := range items {
		fmt.Printf("  • %s\n", item)
	}
}

// PrintCodeBlock prints code in a bordered block with an optional language
// tag above it.
func PrintCodeBlock(code, language string) {
	if language != "" {
		fmt.Println(mutedStyle.Render(" " + language))
	}
	fmt.Println(codeStyle.Render(code))
}

// PrintMarkdown renders markdown for the terminal.
func PrintMarkdown(content string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(content)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// Spinner starts a pterm spinner with the given text. The caller stops it.
func Spinner(message string) *pterm.SpinnerPrinter {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return spinner
}
