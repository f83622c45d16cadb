package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	apierrors "github.com/hosbabel/hosbabel/internal/errors"
	"github.com/hosbabel/hosbabel/internal/render"
)

var (
	replyLabelColor = color.New(color.FgCyan, color.Bold)
	doneColor       = color.New(color.FgGreen)
)

// spinner handles the animated loading indicator
type spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner writing to out
func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	theme := render.GetTUITheme()
	palette := []lipgloss.Color{theme.Primary, theme.Accent, theme.Secondary, theme.Warning}

	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	spin := lipgloss.NewStyle().
		Foreground(palette[s.frame%len(palette)]).
		Bold(true).
		Render(chars[s.frame%len(chars)])

	// Same glyphs as the boot progress bar
	barWidth := 12
	var bar strings.Builder
	lit := s.frame % (barWidth + 1)
	for i := 0; i < barWidth; i++ {
		if i < lit {
			bar.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render("▰"))
		} else {
			bar.WriteString(lipgloss.NewStyle().Foreground(theme.TextMute).Render("▱"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(theme.Text).Render(s.message)
	fmt.Fprintf(s.out, "\r\033[K%s %s %s", spin, bar.String(), msg)
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done
	fmt.Fprintf(s.out, "%s %s\n", doneColor.Sprint("✓"), doneColor.Sprint(message))
}

// stopWithError stops the spinner
func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}

// NewAskCmd creates the one-shot ask command
func NewAskCmd(deps *Dependencies) *cobra.Command {
	var (
		rawOutput bool
		fileFlag  string
	)

	cmd := &cobra.Command{
		Use:   "ask [text]",
		Short: "Send one message and print the reply",
		Long: `Send one message to the backend and print the reply to stdout.

The message comes from the arguments, --file, or stdin. When stdout is a
terminal the reply is rendered as Markdown; otherwise it is printed as-is.
Exits with status 1 when no endpoint produced a reply.

Examples:
  hosbabel ask "hello tower"
  echo "hello" | hosbabel ask
  hosbabel ask -f prompt.md --raw > reply.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := readPrompt(cmd.InOrStdin(), args, fileFlag)
			if err != nil {
				return err
			}
			return runAsk(cmd.Context(), deps, cmd.OutOrStdout(), cmd.ErrOrStderr(), prompt, rawOutput)
		},
	}

	cmd.Flags().BoolVarP(&rawOutput, "raw", "r", false, "Print the reply without decoration")
	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read the message from a file")
	return cmd
}

// readPrompt picks the message from file, args or piped stdin, in that order
func readPrompt(stdin io.Reader, args []string, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", fmt.Errorf("nothing to send: pass text, --file, or pipe stdin")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// runAsk fetches a single reply. Decoration (spinner, label, Markdown) is
// only used when the respective stream is a terminal.
func runAsk(ctx context.Context, deps *Dependencies, out, errOut io.Writer, prompt string, rawOutput bool) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return fmt.Errorf("message cannot be empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	client, release, err := deps.client()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer release()

	var spin *spinner
	if !rawOutput && isTerminal(errOut) {
		spin = newSpinner(errOut, "Asking "+client.BaseURL())
		spin.start()
	}

	started := time.Now()
	reply, err := client.FetchReply(ctx, prompt)
	if err != nil {
		if spin != nil {
			spin.stopWithError()
		}
		if errors.Is(err, apierrors.ErrNoReply) {
			return fmt.Errorf("no reply from %s: %w", client.BaseURL(), err)
		}
		return err
	}
	if spin != nil {
		spin.stopWithSuccess(fmt.Sprintf("Replied in %s", time.Since(started).Round(time.Millisecond)))
	}

	if rawOutput || !isTerminal(out) {
		fmt.Fprint(out, reply)
		if !strings.HasSuffix(reply, "\n") {
			fmt.Fprintln(out)
		}
		return nil
	}

	width := terminalWidth(out) - 4
	if width < 40 {
		width = 40
	}
	if width > 120 {
		width = 120
	}

	fmt.Fprintln(out, replyLabelColor.Sprint("✦ BABEL"))
	rendered, err := render.Markdown(reply, render.OptionsFromConfig(deps.Config, width))
	if err != nil {
		rendered = reply
	}
	fmt.Fprintln(out, strings.TrimRight(rendered, "\n"))
	return nil
}

// isTerminal reports whether w is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w or a default value
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80
}
