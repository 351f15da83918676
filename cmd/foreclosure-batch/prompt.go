package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/joseph-ayodele/foreclosure-parser/internal/common"
)

// promptPaths asks for each input folder and the output path, keeping the
// current value when the answer is blank.
func promptPaths(in io.Reader, out io.Writer, cfg *common.Config) {
	r := bufio.NewReader(in)
	ask := func(label string, dst *string) {
		fmt.Fprintf(out, "%s [%s]: ", label, *dst)
		line, _ := r.ReadString('\n')
		if v := strings.TrimSpace(line); v != "" {
			*dst = v
		}
	}
	ask("Notice folder", &cfg.Input.NoticeDir)
	ask("Judgment folder", &cfg.Input.JudgmentDir)
	ask("Affirmation folder", &cfg.Input.AffirmationDir)
	ask("Output file", &cfg.Output.Path)
}
