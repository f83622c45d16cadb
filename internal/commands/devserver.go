package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hosbabel/hosbabel/internal/devserver"
	"github.com/hosbabel/hosbabel/internal/logger"
)

// NewDevServerCmd creates the local echo backend command
func NewDevServerCmd() *cobra.Command {
	var (
		addr     string
		endpoint string
		shape    string
		latency  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run a local echo backend",
		Long: `Run a local backend that answers the chat endpoints with an echo.

--endpoint restricts replies to one path so the fallback order can be
exercised; --shape picks the response encoding (reply, data, text).

Example:
  hosbabel devserver --addr :8080 --endpoint /api/rag --shape data
  HOS_BABEL_API_BASE=http://localhost:8080 hosbabel chat`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			replyShape, err := devserver.ParseShape(shape)
			if err != nil {
				return err
			}

			// Request logs belong on the terminal for a foreground server
			logger.SetOutput(cmd.ErrOrStderr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "dev backend on %s (shape %s)\n", addr, replyShape)
			return devserver.Run(ctx, addr, devserver.Options{
				Endpoint: endpoint,
				Shape:    replyShape,
				Latency:  latency,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Only answer on this reply path (default: all)")
	cmd.Flags().StringVar(&shape, "shape", string(devserver.ShapeReply), "Reply encoding: reply, data or text")
	cmd.Flags().DurationVar(&latency, "latency", 0, "Delay before each reply")
	return cmd
}
