// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a formatted string without performing I/O.
//   - Write* functions write data to files on the filesystem.

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agbru/soroban/internal/format"
	"github.com/agbru/soroban/internal/problem"
)

// FormatSheet renders problems as a printable drill sheet: one row per
// problem with its signed operands and the answer.
//
// Parameters:
//   - cfg: The drill parameters the problems were generated with.
//   - problems: The problems, in sheet order.
//
// Returns:
//   - string: The sheet text.
func FormatSheet(cfg problem.Config, problems []problem.Problem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Soroban drill sheet\n")
	fmt.Fprintf(&b, "# Step %d, %d operations, mode %s, %d problems\n\n", cfg.Step, cfg.Count, cfg.Mode, len(problems))

	width := 1
	for _, p := range problems {
		for _, v := range p.Operands() {
			width = max(width, len(strconv.Itoa(v)))
		}
	}
	indexWidth := len(strconv.Itoa(len(problems)))

	for i, p := range problems {
		fmt.Fprintf(&b, "%*d.", indexWidth, i+1)
		for j, st := range p.Steps {
			sign := st.Op.Sign()
			if j == 0 {
				sign = "+"
			}
			fmt.Fprintf(&b, "  %s%*d", sign, width, st.Operand)
		}
		fmt.Fprintf(&b, "  =  %s\n", format.FormatYen(p.Answer))
	}
	return b.String()
}

// DisplaySheet writes the sheet to out.
func DisplaySheet(out io.Writer, cfg problem.Config, problems []problem.Problem) error {
	_, err := io.WriteString(out, FormatSheet(cfg, problems))
	return err
}

// WriteSheetToFile writes the sheet to path, creating parent directories.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteSheetToFile(path string, cfg problem.Config, problems []problem.Problem) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(FormatSheet(cfg, problems)), 0644); err != nil {
		return fmt.Errorf("failed to write sheet: %w", err)
	}
	return nil
}
