package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"
)

// WriteFile writes an SRT document to the given path.
func WriteFile(path string, subtitle *File) error {
	if subtitle == nil {
		return fmt.Errorf("subtitle data is empty")
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := Write(writer, subtitle); err != nil {
		return err
	}
	return writer.Flush()
}

// Write serializes an SRT document to w.
func Write(w io.Writer, subtitle *File) error {
	for _, line := range subtitle.Lines {
		if _, err := fmt.Fprintf(w, "%d\n", line.Index); err != nil {
			return err
		}

		startTime := formatDuration(line.StartTime)
		endTime := formatDuration(line.EndTime)
		if _, err := fmt.Fprintf(w, "%s --> %s\n", startTime, endTime); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "%s\n\n", line.Text); err != nil {
			return err
		}
	}
	return nil
}

// formatDuration formats time.Duration to SRT time format
func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	milliseconds := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, milliseconds)
}
