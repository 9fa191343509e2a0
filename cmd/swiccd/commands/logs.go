package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/swiccgo/swicc/pkg/config"
)

var logsLines int

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Tail the engine's log file",
	Long: `Display and follow swiccd's log output.

This reads the log file named by the configuration's logging.output and
follows it for new entries. If the engine is configured to log to stdout
or stderr, there is no file to tail.`,
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 100, "number of lines to show before following")
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logOutput := cfg.Logging.Output
	if logOutput == "stdout" || logOutput == "stderr" {
		return fmt.Errorf("logging.output is %q, not a file; nothing to tail", logOutput)
	}

	if _, err := os.Stat(logOutput); os.IsNotExist(err) {
		return fmt.Errorf("log file not found: %s", logOutput)
	}

	if err := showLogTail(cmd.OutOrStdout(), logOutput, logsLines); err != nil {
		return err
	}

	return followLog(cmd.OutOrStdout(), logOutput)
}

// showLogTail prints the last n lines of file to w.
func showLogTail(w io.Writer, file string, n int) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading log file: %w", err)
	}

	start := 0
	if len(lines) > n {
		start = len(lines) - n
	}
	for _, line := range lines[start:] {
		fmt.Fprintln(w, line)
	}
	return nil
}

// followLog watches file for writes and streams newly appended content to
// w until interrupted.
func followLog(w io.Writer, file string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(file); err != nil {
		return fmt.Errorf("failed to watch log file: %w", err)
	}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end of log file: %w", err)
	}
	reader := bufio.NewReader(f)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write {
				for {
					line, err := reader.ReadString('\n')
					if err != nil {
						break
					}
					fmt.Fprint(w, line)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}
